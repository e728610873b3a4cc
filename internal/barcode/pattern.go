package barcode

import (
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// BarWidth is the cursor advance per rune in the synthetic pattern.
const BarWidth = ir.Millimetre

// BarSegment is one vertical stroke at X spanning Bottom..Top.
// A zero Width means the serializer's default stroke width.
type BarSegment struct {
	X      ir.Length `json:"x"`
	Bottom ir.Length `json:"bottom"`
	Top    ir.Length `json:"top"`
	Width  ir.Length `json:"width"`
}

// GeneratePattern derives the synthetic bar pattern for data inside the box
// whose bottom-left corner is origin.
//
// Runes are visited in order with a cursor starting at origin.X and moving
// BarWidth per rune. An even code point emits a full-height bar at the
// cursor; an odd one leaves the position blank. Processing stops before the
// first position whose cell would extend past origin.X+width, so a zero
// width always yields no bars. Never fails; empty data yields no bars.
func GeneratePattern(data string, origin ir.Point, width, height ir.Length) []BarSegment {
	var bars []BarSegment
	end := origin.X + width
	cursor := origin.X
	for _, r := range data {
		if cursor+BarWidth > end {
			break
		}
		if r%2 == 0 {
			bars = append(bars, BarSegment{
				X:      cursor,
				Bottom: origin.Y,
				Top:    origin.Y + height,
			})
		}
		cursor += BarWidth
	}
	return bars
}

// Positions returns the zero-based cursor positions of the bars relative to
// origin.X. Handy for tests and diagnostics.
func Positions(bars []BarSegment, origin ir.Point) []int {
	pos := make([]int, len(bars))
	for i, b := range bars {
		pos[i] = int((b.X - origin.X) / BarWidth)
	}
	return pos
}

// Instructions converts bars into line strokes for the given field.
func Instructions(field string, bars []BarSegment) []ir.DrawInstruction {
	out := make([]ir.DrawInstruction, len(bars))
	for i, b := range bars {
		out[i] = ir.LineStroke{
			Field: field,
			From:  ir.Point{X: b.X, Y: b.Bottom},
			To:    ir.Point{X: b.X, Y: b.Top},
			Width: b.Width,
		}
	}
	return out
}
