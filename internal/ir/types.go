package ir

import (
	"fmt"
	"strings"
)

// Length is a physical distance in micrometres.
// Integer units keep layouts bit-exact across platforms.
type Length int64

// Common length units.
const (
	Micrometre Length = 1
	Millimetre Length = 1000
)

// MM returns n millimetres as a Length.
func MM(n int64) Length {
	return Length(n) * Millimetre
}

// Millimetres converts the length to floating-point millimetres.
// Only the serializer should need this.
func (l Length) Millimetres() float64 {
	return float64(l) / float64(Millimetre)
}

// String formats the length as millimetres with three decimals ("5.000").
func (l Length) String() string {
	sign := ""
	if l < 0 {
		sign = "-"
		l = -l
	}
	return fmt.Sprintf("%s%d.%03d", sign, l/Millimetre, l%Millimetre)
}

// Point is a page coordinate measured from the bottom-left corner.
type Point struct {
	X Length `json:"x"`
	Y Length `json:"y"`
}

// Pt returns the point (x, y) given in millimetres.
func Pt(x, y int64) Point {
	return Point{X: MM(x), Y: MM(y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s,%s)", p.X, p.Y)
}

// PageProfile is the fixed physical size of a one-page document.
// Every coordinate placed on the page must lie within [0, Width] x [0, Height].
type PageProfile struct {
	Name   string `json:"name"`  // "credential" | "book_label"
	Title  string `json:"title"` // document title metadata
	Width  Length `json:"width"`
	Height Length `json:"height"`
}

// Page profiles. These dimensions are a compatibility contract with the
// physical card and label stock.
var (
	CredentialPage = PageProfile{Name: "credential", Title: "Credencial PPL", Width: MM(85), Height: MM(54)}
	BookLabelPage  = PageProfile{Name: "book_label", Title: "Etiqueta Libro", Width: MM(70), Height: MM(30)}
)

// Contains reports whether p lies on the page, edges included.
func (p PageProfile) Contains(pt Point) bool {
	return pt.X >= 0 && pt.X <= p.Width && pt.Y >= 0 && pt.Y <= p.Height
}

// FontWeight selects one of the two supported font weights.
type FontWeight string

const (
	Regular FontWeight = "regular"
	Bold    FontWeight = "bold"
)

// ValidFontWeights defines the allowed weights.
var ValidFontWeights = map[FontWeight]bool{
	Regular: true,
	Bold:    true,
}

// FontSize is a font size in typographic points.
type FontSize int

// Kind identifies the variant of a DrawInstruction.
type Kind string

const (
	KindText    Kind = "text"
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
)

// DrawInstruction is a sealed interface over the three drawing primitives.
// Only TextRun, LineStroke and ClosedPolygon implement it.
type DrawInstruction interface {
	Kind() Kind
	// FieldName is the semantic slot the instruction renders ("title",
	// "barcode", "issue_date", ...).
	FieldName() string
	// Points returns every coordinate the instruction places on the page.
	Points() []Point
	drawInstruction()
}

// TextRun draws Content with its baseline starting at Origin.
type TextRun struct {
	Field   string     `json:"field"`
	Origin  Point      `json:"origin"`
	Weight  FontWeight `json:"weight"`
	Size    FontSize   `json:"size"`
	Content string     `json:"content"`
}

func (TextRun) Kind() Kind { return KindText }
func (t TextRun) FieldName() string { return t.Field }
func (t TextRun) Points() []Point { return []Point{t.Origin} }
func (TextRun) drawInstruction() {}

// LineStroke draws a straight open line from From to To.
// A zero Width uses the serializer's default stroke width.
type LineStroke struct {
	Field string `json:"field"`
	From  Point  `json:"from"`
	To    Point  `json:"to"`
	Width Length `json:"width"`
}

func (LineStroke) Kind() Kind { return KindLine }
func (l LineStroke) FieldName() string { return l.Field }
func (l LineStroke) Points() []Point { return []Point{l.From, l.To} }
func (LineStroke) drawInstruction() {}

// ClosedPolygon strokes the outline through Vertices and back to the first.
type ClosedPolygon struct {
	Field    string  `json:"field"`
	Vertices []Point `json:"vertices"`
	Width    Length  `json:"width"`
}

func (ClosedPolygon) Kind() Kind { return KindPolygon }
func (c ClosedPolygon) FieldName() string { return c.Field }
func (c ClosedPolygon) Points() []Point { return append([]Point(nil), c.Vertices...) }
func (ClosedPolygon) drawInstruction() {}

// Rect returns the closed rectangle with bottom-left corner lo and top-right
// corner hi, listed counter-clockwise from lo.
func Rect(field string, lo, hi Point) ClosedPolygon {
	return ClosedPolygon{
		Field: field,
		Vertices: []Point{
			{X: lo.X, Y: lo.Y},
			{X: hi.X, Y: lo.Y},
			{X: hi.X, Y: hi.Y},
			{X: lo.X, Y: hi.Y},
		},
	}
}

// Find returns the first instruction rendering field, or nil.
func Find(instrs []DrawInstruction, field string) DrawInstruction {
	for _, in := range instrs {
		if in.FieldName() == field {
			return in
		}
	}
	return nil
}

// Without returns a copy of instrs with every instruction for field removed.
func Without(instrs []DrawInstruction, field string) []DrawInstruction {
	out := make([]DrawInstruction, 0, len(instrs))
	for _, in := range instrs {
		if in.FieldName() != field {
			out = append(out, in)
		}
	}
	return out
}

// Texts joins the content of every text run, one per line.
func Texts(instrs []DrawInstruction) string {
	var b strings.Builder
	for _, in := range instrs {
		if t, ok := in.(TextRun); ok {
			b.WriteString(t.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
