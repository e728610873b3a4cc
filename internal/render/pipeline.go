package render

import (
	"fmt"
	"log/slog"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/layout"
)

// Options selects the layout engine and serializer for a one-shot render.
// Nil fields use layout.Default() and NewSerializer().
type Options struct {
	Layout     *layout.Engine
	Serializer *Serializer
}

func (o Options) engine() *layout.Engine {
	if o.Layout == nil {
		return layout.Default()
	}
	return o.Layout
}

func (o Options) serializer() *Serializer {
	if o.Serializer == nil {
		return NewSerializer()
	}
	return o.Serializer
}

// Result describes a committed document.
type Result struct {
	Path         string `json:"path"`
	Profile      string `json:"profile"`
	Fingerprint  string `json:"fingerprint"`
	Instructions int    `json:"instructions"`
}

// Credential lays out rec and writes the credential card to path.
func Credential(path string, rec ir.CredentialRecord, opts Options) (Result, error) {
	instrs := opts.engine().Credential(rec)
	res, err := commitPage(path, ir.CredentialPage, instrs, opts.serializer())
	if err != nil {
		return Result{}, err
	}
	slog.Info("credential rendered", "ppl_id", rec.ID, "path", path, "fingerprint", res.Fingerprint)
	return res, nil
}

// BookLabel lays out rec and writes the book label to path.
func BookLabel(path string, rec ir.BookLabelRecord, opts Options) (Result, error) {
	instrs := opts.engine().BookLabel(rec)
	res, err := commitPage(path, ir.BookLabelPage, instrs, opts.serializer())
	if err != nil {
		return Result{}, err
	}
	slog.Info("book label rendered", "book_id", rec.ID, "path", path, "fingerprint", res.Fingerprint)
	return res, nil
}

func commitPage(path string, profile ir.PageProfile, instrs []ir.DrawInstruction, s *Serializer) (Result, error) {
	fp, err := ir.Fingerprint(profile, instrs)
	if err != nil {
		return Result{}, newError(ErrCodeSerializationFailure, err, "fingerprint %s page", profile.Name)
	}
	if err := s.WriteFile(path, profile, instrs); err != nil {
		return Result{}, fmt.Errorf("render %s: %w", profile.Name, err)
	}
	return Result{Path: path, Profile: profile.Name, Fingerprint: fp, Instructions: len(instrs)}, nil
}
