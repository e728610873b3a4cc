package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/barcode"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// PatternOptions holds flags for the pattern command.
type PatternOptions struct {
	*RootOptions
	Width     int64 // mm
	Height    int64 // mm
	Symbology string
}

// PatternResult is the pattern command's JSON output.
type PatternResult struct {
	Data      string               `json:"data"`
	Symbology string               `json:"symbology"`
	Bars      []barcode.BarSegment `json:"bars"`
}

// NewPatternCommand creates the pattern command.
func NewPatternCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PatternOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pattern <data>",
		Short: "Show the bars generated for a value",
		Long: `Show the bars generated for a value in a box anchored at (0,0).

With the synthetic symbology each character takes one millimetre: an even
code point draws a bar, an odd one leaves a gap, and characters that would
overflow the box are dropped.

Example:
  biblioteca pattern PPL-0042
  biblioteca pattern 1234 --width 50 --symbology code128`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPattern(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Width, "width", 40, "box width in mm")
	cmd.Flags().Int64Var(&opts.Height, "height", 3, "box height in mm")
	cmd.Flags().StringVar(&opts.Symbology, "symbology", "", "synthetic|code128 (default: config value)")

	return cmd
}

func runPattern(opts *PatternOptions, data string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Width < 0 || opts.Height < 0 {
		return failWith(formatter, ErrCodeInvalidArguments, ExitCommandError, "width and height must be >= 0", nil)
	}

	name := opts.Symbology
	if name == "" {
		sess, err := newSession(opts.RootOptions)
		if err != nil {
			return fail(formatter, "loading config", err)
		}
		name = sess.Config.Symbology
	}
	sym, err := barcode.Lookup(name)
	if err != nil {
		return failWith(formatter, ErrCodeInvalidArguments, ExitCommandError, "choosing symbology", err)
	}

	origin := ir.Pt(0, 0)
	bars := sym.Bars(data, origin, ir.MM(opts.Width), ir.MM(opts.Height))
	if bars == nil {
		bars = []barcode.BarSegment{}
	}

	if formatter.Format == "json" {
		return formatter.Success(PatternResult{Data: data, Symbology: sym.Name(), Bars: bars})
	}

	fmt.Fprintf(formatter.Writer, "%s %q: %d bar(s)\n", sym.Name(), data, len(bars))
	if sym.Name() == barcode.NameSynthetic {
		fmt.Fprintf(formatter.Writer, "  %s\n", strip(bars, origin, opts.Width))
	}
	for _, b := range bars {
		fmt.Fprintf(formatter.Writer, "  x=%s y=%s-%s", b.X, b.Bottom, b.Top)
		if b.Width > 0 {
			fmt.Fprintf(formatter.Writer, " w=%s", b.Width)
		}
		fmt.Fprintln(formatter.Writer)
	}
	return nil
}

// strip draws synthetic bars one cell per millimetre: '|' bar, '.' gap.
func strip(bars []barcode.BarSegment, origin ir.Point, widthMM int64) string {
	if len(bars) == 0 {
		return ""
	}
	positions := barcode.Positions(bars, origin)
	last := positions[len(positions)-1]
	if int64(last) >= widthMM {
		last = int(widthMM) - 1
	}
	cells := []byte(strings.Repeat(".", last+1))
	for _, p := range positions {
		if p >= 0 && p < len(cells) {
			cells[p] = '|'
		}
	}
	return string(cells)
}
