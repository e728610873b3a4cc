package cli

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/batch"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/render"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/store"
)

// LabelOptions holds flags for the label command.
type LabelOptions struct {
	*RootOptions
	Record   labelFlags
	Book     int64 // look the book up in the catalogue
	Database string
	Output   string
	Dir      string
	Strict   bool
}

// NewLabelCommand creates the label command.
func NewLabelCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LabelOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "label",
		Short: "Print a book label (70x30 mm)",
		Long: `Print a book spine label as a one-page PDF.

The record comes from flags, or from the catalogue with --db and --book.
Catalogue books without a stored location print their shelf code
(shelf, level, two-digit position).

Example:
  biblioteca label --id 1234 --title "Cien años de soledad" --author "Gabriel García Márquez" --location C434
  biblioteca label --db biblioteca.db --book 1234`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabel(cmd.Context(), opts, cmd)
		},
	}

	opts.Record.bind(cmd)
	cmd.Flags().Int64Var(&opts.Book, "book", 0, "book ID to load from the catalogue (requires --db)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite catalogue")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: <dir>/etiqueta_libro_<id>.pdf)")
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "output directory when --output is not given")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "refuse records with missing fields")

	return cmd
}

func runLabel(ctx context.Context, opts *LabelOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	sess, err := newSession(opts.RootOptions)
	if err != nil {
		return fail(formatter, "loading config", err)
	}

	rec := opts.Record.record()
	switch {
	case opts.Book != 0 && opts.Database == "":
		return failWith(formatter, ErrCodeInvalidArguments, ExitCommandError, "--book requires --db", nil)
	case opts.Book != 0:
		st, err := store.Open(opts.Database)
		if err != nil {
			return failWith(formatter, ErrCodeCatalogue, ExitCommandError, "opening catalogue", err)
		}
		defer st.Close()

		formatter.VerboseLog("Loading book %d from %s", opts.Book, opts.Database)
		rec, err = st.BookLabel(ctx, opts.Book)
		if err != nil {
			return fail(formatter, "loading book", err)
		}
	}
	if opts.Strict {
		if err := rec.Validate(); err != nil {
			return fail(formatter, "incomplete record", err)
		}
	}

	path := opts.Output
	if path == "" {
		path = filepath.Join(opts.Dir, batch.LabelFileName(rec.ID))
	}

	res, err := render.BookLabel(path, rec, sess.renderOptions())
	if err != nil {
		return fail(formatter, "rendering label", err)
	}
	return outputRendered(formatter, ir.BookLabelPage, strconv.FormatInt(rec.ID, 10), res)
}
