package render

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// DefaultFontFamily is the core font used when Serializer.FontFamily is empty.
const DefaultFontFamily = "Helvetica"

// Clock supplies the document creation date.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Serializer encodes instruction lists as PDF documents.
// The zero value is usable: Helvetica, wall-clock dates.
type Serializer struct {
	// FontFamily names a PDF core font (Helvetica, Times, Courier).
	FontFamily string

	// Clock pins the document creation and modification dates. Two renders
	// of the same instructions under the same instant are byte-identical.
	Clock Clock
}

// NewSerializer returns a serializer with the default font family.
func NewSerializer() *Serializer {
	return &Serializer{FontFamily: DefaultFontFamily, Clock: systemClock{}}
}

// Write encodes one page of profile's size and writes it to w.
// Nothing is written to w unless encoding succeeds.
func (s *Serializer) Write(w io.Writer, profile ir.PageProfile, instrs []ir.DrawInstruction) error {
	data, err := s.encode(profile, instrs)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return newError(ErrCodeSinkUnavailable, err, "write %s document", profile.Name)
	}
	return nil
}

// WriteFile encodes one page and commits it to path. The document is
// written to a temporary file beside path, synced and renamed into place;
// on any failure the temporary file is removed and path is left untouched.
func (s *Serializer) WriteFile(path string, profile ir.PageProfile, instrs []ir.DrawInstruction) error {
	renderID := uuid.Must(uuid.NewV7()).String()

	data, err := s.encode(profile, instrs)
	if err != nil {
		return withPath(err, path)
	}
	if err := commit(path, data); err != nil {
		return withPath(err, path)
	}

	slog.Debug("document written",
		"render_id", renderID,
		"profile", profile.Name,
		"path", path,
		"instructions", len(instrs),
		"bytes", len(data),
	)
	return nil
}

func withPath(err error, path string) error {
	var de *DocumentError
	if errors.As(err, &de) && de.Path == "" {
		de.Path = path
	}
	return err
}

func (s *Serializer) family() string {
	if s.FontFamily == "" {
		return DefaultFontFamily
	}
	return s.FontFamily
}

func (s *Serializer) now() time.Time {
	if s.Clock == nil {
		return systemClock{}.Now()
	}
	return s.Clock.Now()
}

// encode builds the whole document in memory.
func (s *Serializer) encode(profile ir.PageProfile, instrs []ir.DrawInstruction) ([]byte, error) {
	if profile.Width <= 0 || profile.Height <= 0 {
		return nil, newError(ErrCodeSerializationFailure, nil, "page profile %q has no area", profile.Name)
	}
	for i, in := range instrs {
		for _, pt := range in.Points() {
			if !profile.Contains(pt) {
				return nil, newError(ErrCodeSerializationFailure, nil,
					"instruction %d (%s %s) places %s outside the %s page", i, in.Kind(), in.FieldName(), pt, profile.Name)
			}
		}
	}

	pdf := fpdf.NewCustom(pageInit(profile))
	now := s.now()
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(profile.Title, true)
	pdf.SetCreator("biblioteca "+ir.GeneratorVersion, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	defaultWidth := pdf.GetLineWidth()

	p := page{pdf: pdf, height: profile.Height, family: s.family(), defaultWidth: defaultWidth}
	for i, in := range instrs {
		if err := p.draw(in); err != nil {
			return nil, err
		}
		if pdf.Err() {
			return nil, newError(ErrCodeSerializationFailure, pdf.Error(), "instruction %d (%s %s)", i, in.Kind(), in.FieldName())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, newError(ErrCodeSerializationFailure, err, "encode %s document", profile.Name)
	}
	return buf.Bytes(), nil
}

// pageInit describes the page to fpdf. Sizes are given short side first
// with the orientation picking which side runs horizontally.
func pageInit(profile ir.PageProfile) *fpdf.InitType {
	w, h := profile.Width.Millimetres(), profile.Height.Millimetres()
	cfg := &fpdf.InitType{OrientationStr: "P", UnitStr: "mm", Size: fpdf.SizeType{Wd: w, Ht: h}}
	if w > h {
		cfg.OrientationStr = "L"
		cfg.Size = fpdf.SizeType{Wd: h, Ht: w}
	}
	return cfg
}

// page draws onto one fpdf page.
type page struct {
	pdf          *fpdf.Fpdf
	height       ir.Length
	family       string
	defaultWidth float64
}

func (p *page) x(l ir.Length) float64 { return l.Millimetres() }

// y flips a bottom-left ordinate into fpdf's top-left space.
func (p *page) y(l ir.Length) float64 { return (p.height - l).Millimetres() }

func (p *page) draw(in ir.DrawInstruction) error {
	switch v := in.(type) {
	case ir.TextRun:
		return p.text(v)
	case ir.LineStroke:
		p.stroke(v.Width)
		p.pdf.Line(p.x(v.From.X), p.y(v.From.Y), p.x(v.To.X), p.y(v.To.Y))
	case ir.ClosedPolygon:
		if len(v.Vertices) < 3 {
			return newError(ErrCodeSerializationFailure, nil, "polygon %s has %d vertices", v.Field, len(v.Vertices))
		}
		pts := make([]fpdf.PointType, len(v.Vertices))
		for i, pt := range v.Vertices {
			pts[i] = fpdf.PointType{X: p.x(pt.X), Y: p.y(pt.Y)}
		}
		p.stroke(v.Width)
		p.pdf.Polygon(pts, "D")
	default:
		return newError(ErrCodeSerializationFailure, nil, "unsupported instruction %T", in)
	}
	return nil
}

func (p *page) stroke(width ir.Length) {
	if width > 0 {
		p.pdf.SetLineWidth(width.Millimetres())
		return
	}
	p.pdf.SetLineWidth(p.defaultWidth)
}

func (p *page) text(t ir.TextRun) error {
	style, ok := fontStyles[t.Weight]
	if !ok {
		return newError(ErrCodeFontUnavailable, nil, "no %s weight %q for field %s", p.family, t.Weight, t.Field)
	}
	if t.Size <= 0 {
		return newError(ErrCodeFontUnavailable, nil, "font size %d for field %s", t.Size, t.Field)
	}
	p.pdf.SetFont(p.family, style, float64(t.Size))
	if p.pdf.Err() {
		return newError(ErrCodeFontUnavailable, p.pdf.Error(), "font %s %s for field %s", p.family, t.Weight, t.Field)
	}
	p.pdf.Text(p.x(t.Origin.X), p.y(t.Origin.Y), EncodeText(t.Content))
	return nil
}

var fontStyles = map[ir.FontWeight]string{
	ir.Regular: "",
	ir.Bold:    "B",
}

// EncodeText converts s to the Windows-1252 code page of the PDF core
// fonts. Input is NFC-normalized first so decomposed accents compose into
// their Latin-1 forms; runes with no code page slot become '?'.
func EncodeText(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// commit writes data to path through a synced temporary file in the same
// directory.
func commit(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return newError(ErrCodeSinkUnavailable, err, "create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return newError(ErrCodeSinkUnavailable, err, "write temporary file")
	}
	if err := tmp.Chmod(0o644); err != nil {
		return newError(ErrCodeSinkUnavailable, err, "chmod temporary file")
	}
	if err := tmp.Sync(); err != nil {
		return newError(ErrCodeSinkUnavailable, err, "sync temporary file")
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return newError(ErrCodeSinkUnavailable, err, "close temporary file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return newError(ErrCodeSinkUnavailable, err, "rename into place")
	}
	return nil
}
