// Package config loads the optional configuration file that tunes the
// document core: caption language, font family, barcode symbology and the
// per-field font sizes of both legibility profiles.
//
// Files are CUE (JSON is valid CUE) and are validated against the embedded
// #Config schema before decoding.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/barcode"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/layout"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded configuration.
type Config struct {
	Lang       string                      `json:"lang"`
	FontFamily string                      `json:"font_family"`
	Symbology  string                      `json:"symbology"`
	Credential layout.CredentialLegibility `json:"credential"`
	Label      layout.LabelLegibility      `json:"label"`
}

// Default returns the configuration used when no file is given.
// It matches the defaults declared in schema.cue.
func Default() Config {
	return Config{
		Lang:       "es",
		FontFamily: "Helvetica",
		Symbology:  barcode.NameSynthetic,
		Credential: layout.DefaultCredentialLegibility,
		Label:      layout.DefaultLabelLegibility,
	}
}

// Error reports a configuration file that cannot be read or does not
// satisfy the schema.
type Error struct {
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads and validates the configuration at path.
// An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Path: path, Message: "cannot read file", Err: err}
	}
	return Parse(path, data)
}

// Parse validates data against the schema and decodes it.
// name is used in diagnostics only.
func Parse(name string, data []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, &Error{Message: "invalid embedded schema", Err: err}
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileBytes(data, cue.Filename(name))
	if err := user.Err(); err != nil {
		return Config{}, newCUEError(name, "syntax error", err)
	}

	unified := def.Unify(user)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, newCUEError(name, "schema violation", err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, newCUEError(name, "decode failed", err)
	}
	return cfg, nil
}

func newCUEError(path, message string, err error) *Error {
	details := strings.TrimSpace(cueerrors.Details(err, nil))
	if details != "" {
		message = fmt.Sprintf("%s: %s", message, details)
	}
	return &Error{Path: path, Message: message, Err: err}
}

// IsError reports whether err is a configuration error.
func IsError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}

// Engine builds a layout engine from the configuration. A nil clock uses
// the wall clock.
func (c Config) Engine(clock layout.Clock) (*layout.Engine, error) {
	captions, err := layout.CaptionsFor(c.Lang)
	if err != nil {
		return nil, err
	}
	sym, err := barcode.Lookup(c.Symbology)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = layout.SystemClock{}
	}
	return &layout.Engine{
		CredentialSizes: c.Credential,
		LabelSizes:      c.Label,
		Captions:        captions,
		Symbology:       sym,
		Clock:           clock,
	}, nil
}
