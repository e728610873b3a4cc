package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// Job kinds.
const (
	KindCredential = "credential"
	KindBookLabel  = "book_label"
)

// Job is one document to render.
type Job struct {
	Kind string
	Key  string // reader ID or book ID as printed
	Path string

	Credential ir.CredentialRecord
	Label      ir.BookLabelRecord

	// Catalogued marks records read from the catalogue. Only those are
	// logged as issued; inline readers may not exist there.
	Catalogued bool
}

// Catalogue resolves manifest references. *store.Store implements it.
type Catalogue interface {
	Credential(ctx context.Context, pplID string) (ir.CredentialRecord, error)
	BookLabelsByShelf(ctx context.Context, shelf string) ([]ir.BookLabelRecord, error)
}

// CredentialFileName is the default file name of a credential.
func CredentialFileName(id string) string {
	return "credencial_" + fileSafe(id) + ".pdf"
}

// LabelFileName is the default file name of a book label.
func LabelFileName(id int64) string {
	return "etiqueta_libro_" + strconv.FormatInt(id, 10) + ".pdf"
}

// fileSafe keeps IDs from escaping the output directory.
func fileSafe(id string) string {
	if id == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, id)
}

// Plan expands m into jobs: inline credentials, inline labels, then catalogue
// readers and shelves, each in manifest order. cat may be nil when the
// manifest names no readers or shelves.
func Plan(ctx context.Context, m *Manifest, cat Catalogue) ([]Job, error) {
	if m.NeedsCatalogue() && cat == nil {
		return nil, fmt.Errorf("manifest names readers or shelves but no catalogue is open")
	}

	var jobs []Job
	for _, c := range m.Credentials {
		jobs = append(jobs, credentialJob(m.OutputDir, c.CredentialRecord, c.Output))
	}
	for _, l := range m.Labels {
		jobs = append(jobs, labelJob(m.OutputDir, l.BookLabelRecord, l.Output))
	}

	for _, id := range m.Readers {
		rec, err := cat.Credential(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("reader %q: %w", id, err)
		}
		job := credentialJob(m.OutputDir, rec, "")
		job.Catalogued = true
		jobs = append(jobs, job)
	}
	for _, shelf := range m.Shelves {
		recs, err := cat.BookLabelsByShelf(ctx, shelf)
		if err != nil {
			return nil, fmt.Errorf("shelf %q: %w", shelf, err)
		}
		for _, rec := range recs {
			job := labelJob(m.OutputDir, rec, "")
			job.Catalogued = true
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func credentialJob(dir string, rec ir.CredentialRecord, name string) Job {
	if name == "" {
		name = CredentialFileName(rec.ID)
	}
	return Job{Kind: KindCredential, Key: rec.ID, Path: filepath.Join(dir, name), Credential: rec}
}

func labelJob(dir string, rec ir.BookLabelRecord, name string) Job {
	if name == "" {
		name = LabelFileName(rec.ID)
	}
	return Job{Kind: KindBookLabel, Key: strconv.FormatInt(rec.ID, 10), Path: filepath.Join(dir, name), Label: rec}
}
