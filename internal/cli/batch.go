package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/batch"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/store"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Database string
	Workers  int
}

// BatchItem is one job in the batch command's output.
type BatchItem struct {
	Kind        string `json:"kind"`
	Key         string `json:"key"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BatchSummary is the batch command's output.
type BatchSummary struct {
	Total  int         `json:"total"`
	Failed int         `json:"failed"`
	Items  []BatchItem `json:"items"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Print every document listed in a manifest",
		Long: `Print every credential and label listed in a YAML manifest.

Records are given inline or pulled from the catalogue by reader ID
(readers:) or by shelf (shelves:). Documents render concurrently; a failed
document is reported and the rest still print. Exits 1 if any failed.

Example manifest:
  output_dir: impresos
  credentials:
    - id: PPL-0042
      given_name: Juan
      family_name: Pérez
  shelves: [C]`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite catalogue (needed for readers:/shelves:)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent renders (default: manifest value, else 4)")

	return cmd
}

func runBatch(ctx context.Context, opts *BatchOptions, manifestPath string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	sess, err := newSession(opts.RootOptions)
	if err != nil {
		return fail(formatter, "loading config", err)
	}

	m, err := batch.LoadManifest(manifestPath)
	if err != nil {
		return failWith(formatter, ErrCodeManifest, ExitCommandError, "loading manifest", err)
	}

	runner := &batch.Runner{
		Options: sess.renderOptions(),
		Workers: m.Workers,
		Strict:  m.Strict,
		Now:     sess.Clock.Now,
	}
	if opts.Workers > 0 {
		runner.Workers = opts.Workers
	}

	var cat batch.Catalogue
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return failWith(formatter, ErrCodeCatalogue, ExitCommandError, "opening catalogue", err)
		}
		defer st.Close()
		cat = st
		runner.Log = st
	}

	jobs, err := batch.Plan(ctx, m, cat)
	if err != nil {
		return fail(formatter, "planning batch", err)
	}
	formatter.VerboseLog("Rendering %d document(s) into %s", len(jobs), m.OutputDir)

	report := runner.Run(ctx, jobs)
	summary := summarize(report)

	if err := outputBatch(formatter, summary); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: %d of %d document(s) failed", ErrCodeBatchIncomplete, summary.Failed, summary.Total), report.Err())
	}
	return nil
}

func summarize(report *batch.Report) BatchSummary {
	s := BatchSummary{Total: len(report.Results), Items: make([]BatchItem, len(report.Results))}
	for i, res := range report.Results {
		item := BatchItem{Kind: res.Kind, Key: res.Key, Path: res.Path, Fingerprint: res.Fingerprint}
		if res.Err != nil {
			item.Error = res.Err.Error()
			s.Failed++
		}
		s.Items[i] = item
	}
	return s
}

func outputBatch(formatter *OutputFormatter, summary BatchSummary) error {
	if formatter.Format == "json" {
		if summary.Failed > 0 {
			return formatter.Error(ErrCodeBatchIncomplete,
				fmt.Sprintf("%d of %d document(s) failed", summary.Failed, summary.Total), summary)
		}
		return formatter.Success(summary)
	}

	for _, item := range summary.Items {
		if item.Error != "" {
			fmt.Fprintf(formatter.Writer, "✗ %s %s: %s\n", item.Kind, item.Key, item.Error)
			continue
		}
		fmt.Fprintf(formatter.Writer, "✓ %s %s → %s\n", item.Kind, item.Key, item.Path)
	}
	fmt.Fprintf(formatter.Writer, "\n%d document(s), %d failed\n", summary.Total, summary.Failed)
	return nil
}
