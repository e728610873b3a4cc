package cli

import (
	"github.com/spf13/cobra"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/config"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/layout"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/render"
)

// session is the configured pipeline of one command invocation.
type session struct {
	Config     config.Config
	Engine     *layout.Engine
	Serializer *render.Serializer
	Clock      layout.Clock
}

func newSession(opts *RootOptions) (*session, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = layout.SystemClock{}
	}
	engine, err := cfg.Engine(clock)
	if err != nil {
		return nil, &config.Error{Path: opts.Config, Message: err.Error(), Err: err}
	}
	return &session{
		Config:     cfg,
		Engine:     engine,
		Serializer: &render.Serializer{FontFamily: cfg.FontFamily, Clock: clock},
		Clock:      clock,
	}, nil
}

func (s *session) renderOptions() render.Options {
	return render.Options{Layout: s.Engine, Serializer: s.Serializer}
}

// credentialFlags reads a credential record from flags.
type credentialFlags struct {
	ID         string
	GivenName  string
	FamilyName string
	Photo      string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ID, "id", "", "reader ID printed and encoded in the barcode")
	cmd.Flags().StringVar(&f.GivenName, "given-name", "", "reader given name")
	cmd.Flags().StringVar(&f.FamilyName, "family-name", "", "reader family name")
	cmd.Flags().StringVar(&f.Photo, "photo", "", "photo reference (recorded, never read)")
}

func (f *credentialFlags) record() ir.CredentialRecord {
	return ir.CredentialRecord{ID: f.ID, GivenName: f.GivenName, FamilyName: f.FamilyName, PhotoRef: f.Photo}
}

// labelFlags reads a book label record from flags.
type labelFlags struct {
	ID       int64
	Title    string
	Author   string
	Location string
}

func (f *labelFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.ID, "id", 0, "catalogue number printed and encoded in the barcode")
	cmd.Flags().StringVar(&f.Title, "title", "", "book title")
	cmd.Flags().StringVar(&f.Author, "author", "", "book author")
	cmd.Flags().StringVar(&f.Location, "location", "", "shelf location, e.g. C434")
}

func (f *labelFlags) record() ir.BookLabelRecord {
	return ir.BookLabelRecord{ID: f.ID, Title: f.Title, Author: f.Author, Location: f.Location}
}
