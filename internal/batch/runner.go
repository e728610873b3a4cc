package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/render"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/store"
)

// DefaultWorkers bounds concurrent renders when none is configured.
const DefaultWorkers = 4

// ErrDuplicatePath rejects a job whose output path an earlier job claimed.
var ErrDuplicatePath = errors.New("output path already claimed by an earlier job")

// IssuanceLog records printed credentials. *store.Store implements it.
type IssuanceLog interface {
	RecordIssuance(ctx context.Context, iss store.Issuance) (store.Issuance, error)
}

// Runner renders jobs concurrently.
type Runner struct {
	Options render.Options

	// Workers bounds concurrent renders. Zero means DefaultWorkers.
	Workers int

	// Strict validates records before rendering; incomplete records fail
	// with *ir.InputError instead of printing blanks.
	Strict bool

	// Log, when set, receives one entry per catalogued credential written.
	Log IssuanceLog

	// Now stamps issuance entries. Nil means time.Now.
	Now func() time.Time
}

// Result is the outcome of one job.
type Result struct {
	Kind        string `json:"kind"`
	Key         string `json:"key"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Err         error  `json:"-"`
}

// Report collects the results of a run, in job order.
type Report struct {
	Results []Result
}

// Failed counts jobs that did not produce a document.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Err joins every job error, or returns nil when all jobs succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", res.Kind, res.Key, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Run renders jobs and waits for all of them. Once ctx is cancelled no new
// job starts; jobs not started report the context error. Jobs already
// rendering finish.
func (r *Runner) Run(ctx context.Context, jobs []Job) *Report {
	results := make([]Result, len(jobs))
	claimed := make(map[string]int, len(jobs))

	g := new(errgroup.Group)
	g.SetLimit(r.workers())

	for i, job := range jobs {
		results[i] = Result{Kind: job.Kind, Key: job.Key, Path: job.Path}

		key := filepath.Clean(job.Path)
		if first, ok := claimed[key]; ok {
			results[i].Err = fmt.Errorf("%w (job %d)", ErrDuplicatePath, first)
			continue
		}
		claimed[key] = i

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			results[i].Fingerprint, results[i].Err = r.render(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Results: results}
	slog.Info("batch finished", "jobs", len(jobs), "failed", report.Failed())
	return report
}

func (r *Runner) render(ctx context.Context, job Job) (string, error) {
	switch job.Kind {
	case KindCredential:
		if r.Strict {
			if err := job.Credential.Validate(); err != nil {
				return "", err
			}
		}
		res, err := render.Credential(job.Path, job.Credential, r.Options)
		if err != nil {
			return "", err
		}
		if r.Log != nil && job.Catalogued {
			_, err := r.Log.RecordIssuance(ctx, store.Issuance{
				PPLID:       job.Credential.ID,
				Photo:       job.Credential.PhotoRef,
				IssuedAt:    r.now(),
				Fingerprint: res.Fingerprint,
			})
			if err != nil {
				return res.Fingerprint, fmt.Errorf("document written but not logged: %w", err)
			}
		}
		return res.Fingerprint, nil

	case KindBookLabel:
		if r.Strict {
			if err := job.Label.Validate(); err != nil {
				return "", err
			}
		}
		res, err := render.BookLabel(job.Path, job.Label, r.Options)
		if err != nil {
			return "", err
		}
		return res.Fingerprint, nil

	default:
		return "", fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

func (r *Runner) workers() int {
	if r.Workers <= 0 {
		return DefaultWorkers
	}
	return r.Workers
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
