package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/batch"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/render"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/store"
)

// CredentialOptions holds flags for the credential command.
type CredentialOptions struct {
	*RootOptions
	Record   credentialFlags
	PPL      string // look the reader up in the catalogue
	Database string
	Output   string
	Dir      string
	Strict   bool
}

// NewCredentialCommand creates the credential command.
func NewCredentialCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CredentialOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Print a reader credential (85x54 mm)",
		Long: `Print a reader credential as a one-page PDF.

The record comes from flags, or from the catalogue with --db and --ppl.
Catalogue readers get the issuance logged with the page fingerprint.

Example:
  biblioteca credential --id PPL-0042 --given-name Juan --family-name Pérez
  biblioteca credential --db biblioteca.db --ppl PPL-0042 --dir impresos/`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCredential(cmd.Context(), opts, cmd)
		},
	}

	opts.Record.bind(cmd)
	cmd.Flags().StringVar(&opts.PPL, "ppl", "", "reader ID to load from the catalogue (requires --db)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite catalogue")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: <dir>/credencial_<id>.pdf)")
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "output directory when --output is not given")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "refuse records with missing fields")

	return cmd
}

func runCredential(ctx context.Context, opts *CredentialOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	sess, err := newSession(opts.RootOptions)
	if err != nil {
		return fail(formatter, "loading config", err)
	}

	if opts.PPL != "" && opts.Database == "" {
		return failWith(formatter, ErrCodeInvalidArguments, ExitCommandError, "--ppl requires --db", nil)
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return failWith(formatter, ErrCodeCatalogue, ExitCommandError, "opening catalogue", err)
		}
		defer st.Close()
	}

	rec := opts.Record.record()
	if opts.PPL != "" {
		formatter.VerboseLog("Loading reader %s from %s", opts.PPL, opts.Database)
		rec, err = st.Credential(ctx, opts.PPL)
		if err != nil {
			return fail(formatter, "loading reader", err)
		}
	}
	if opts.Strict {
		if err := rec.Validate(); err != nil {
			return fail(formatter, "incomplete record", err)
		}
	}

	path := opts.Output
	if path == "" {
		path = filepath.Join(opts.Dir, batch.CredentialFileName(rec.ID))
	}

	res, err := render.Credential(path, rec, sess.renderOptions())
	if err != nil {
		return fail(formatter, "rendering credential", err)
	}

	if opts.PPL != "" {
		if _, err := st.RecordIssuance(ctx, store.Issuance{
			PPLID:       rec.ID,
			Photo:       rec.PhotoRef,
			IssuedAt:    sess.Clock.Now(),
			Fingerprint: res.Fingerprint,
		}); err != nil {
			return fail(formatter, "credential written but not logged", err)
		}
	}

	return outputRendered(formatter, ir.CredentialPage, rec.ID, res)
}

func outputRendered(formatter *OutputFormatter, profile ir.PageProfile, key string, res render.Result) error {
	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	fmt.Fprintf(formatter.Writer, "✓ %s %s written to %s\n", profile.Title, key, res.Path)
	fmt.Fprintf(formatter.Writer, "  fingerprint %s\n", res.Fingerprint)
	return nil
}
