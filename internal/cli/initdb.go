package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/store"
)

// InitDBOptions holds flags for the init-db command.
type InitDBOptions struct {
	*RootOptions
	Seed string
}

// seedFile lists catalogue rows to insert. Field names follow the
// catalogue's column names.
type seedFile struct {
	People []store.Person `yaml:"ppl"`
	Books  []store.Book   `yaml:"libros"`
}

// InitDBResult is the init-db command's JSON output.
type InitDBResult struct {
	Path   string `json:"path"`
	People int    `json:"ppl"`
	Books  int    `json:"libros"`
}

// NewInitDBCommand creates the init-db command.
func NewInitDBCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitDBOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init-db <path>",
		Short: "Create or upgrade a catalogue database",
		Long: `Create a SQLite catalogue, or bring an existing one up to date.

With --seed, readers (ppl:) and books (libros:) from a YAML file are
inserted; rows whose ID already exists are left untouched.

Example:
  biblioteca init-db biblioteca.db --seed catalogo.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitDB(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Seed, "seed", "", "YAML file of ppl/libros rows to insert")

	return cmd
}

func runInitDB(ctx context.Context, opts *InitDBOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	var seed seedFile
	if opts.Seed != "" {
		data, err := os.ReadFile(opts.Seed)
		if err != nil {
			return failWith(formatter, ErrCodeNotFound, ExitCommandError, "reading seed file", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&seed); err != nil {
			return failWith(formatter, ErrCodeGeneric, ExitCommandError, "parsing seed file", err)
		}
	}

	st, err := store.Open(path)
	if err != nil {
		return failWith(formatter, ErrCodeCatalogue, ExitCommandError, "opening catalogue", err)
	}
	defer st.Close()

	for _, p := range seed.People {
		if err := st.WritePerson(ctx, p); err != nil {
			return fail(formatter, "seeding ppl", err)
		}
	}
	for _, b := range seed.Books {
		if err := st.WriteBook(ctx, b); err != nil {
			return fail(formatter, "seeding libros", err)
		}
	}

	result := InitDBResult{Path: path, People: len(seed.People), Books: len(seed.Books)}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Catalogue ready at %s\n", path)
	if opts.Seed != "" {
		fmt.Fprintf(formatter.Writer, "  seeded %d reader(s), %d book(s)\n", result.People, result.Books)
	}
	return nil
}
