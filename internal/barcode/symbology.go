package barcode

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/boombuler/barcode/code128"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// Symbology turns data into bars filling a box. Implementations must be
// deterministic and must never fail; anything they cannot encode degrades
// to the synthetic pattern.
type Symbology interface {
	Name() string
	Bars(data string, origin ir.Point, width, height ir.Length) []BarSegment
}

// Symbology names accepted by Lookup.
const (
	NameSynthetic = "synthetic"
	NameCode128   = "code128"
)

// Synthetic is the parity-based visual stand-in (not scannable).
type Synthetic struct{}

func (Synthetic) Name() string { return NameSynthetic }

func (Synthetic) Bars(data string, origin ir.Point, width, height ir.Length) []BarSegment {
	return GeneratePattern(data, origin, width, height)
}

// Code128 renders a scannable Code 128 symbol stretched over the box width.
// Adjacent dark modules merge into one wider bar.
type Code128 struct{}

func (Code128) Name() string { return NameCode128 }

func (Code128) Bars(data string, origin ir.Point, width, height ir.Length) []BarSegment {
	modules, err := code128Modules(data)
	if err != nil || len(modules) == 0 {
		return GeneratePattern(data, origin, width, height)
	}
	module := width / ir.Length(len(modules))
	if module <= 0 {
		return GeneratePattern(data, origin, width, height)
	}

	var bars []BarSegment
	for i := 0; i < len(modules); {
		if !modules[i] {
			i++
			continue
		}
		start := i
		for i < len(modules) && modules[i] {
			i++
		}
		run := ir.Length(i - start)
		bars = append(bars, BarSegment{
			X:      origin.X + ir.Length(start)*module + run*module/2,
			Bottom: origin.Y,
			Top:    origin.Y + height,
			Width:  run * module,
		})
	}
	return bars
}

// code128Modules encodes data and returns one entry per module, true for dark.
func code128Modules(data string) ([]bool, error) {
	if data == "" {
		return nil, fmt.Errorf("code128: empty data")
	}
	bc, err := code128.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("code128: %w", err)
	}
	bounds := bc.Bounds()
	modules := make([]bool, 0, bounds.Dx())
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		gray := color.GrayModel.Convert(bc.At(x, bounds.Min.Y)).(color.Gray)
		modules = append(modules, gray.Y < 128)
	}
	return modules, nil
}

var symbologies = map[string]Symbology{
	NameSynthetic: Synthetic{},
	NameCode128:   Code128{},
}

// Lookup resolves a symbology by name. The empty name selects Synthetic.
func Lookup(name string) (Symbology, error) {
	if name == "" {
		return Synthetic{}, nil
	}
	s, ok := symbologies[name]
	if !ok {
		return nil, fmt.Errorf("unknown symbology %q: must be one of %v", name, Names())
	}
	return s, nil
}

// Names lists the registered symbology names in sorted order.
func Names() []string {
	names := make([]string, 0, len(symbologies))
	for n := range symbologies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
