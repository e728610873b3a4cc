package ir

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Dump writes one stable line per instruction, in order:
//
//	text title bold 12pt (5.000,45.000) "CREDENCIAL PPL"
//	line barcode (5.000,22.000)-(5.000,25.000) w=0.000
//	polygon photo_frame (55.000,25.000) (75.000,25.000) ... w=0.000
//
// The format is used by golden tests and the CLI, so changing it is a
// breaking change for both.
func Dump(w io.Writer, instrs []DrawInstruction) error {
	for _, in := range instrs {
		var line string
		switch v := in.(type) {
		case TextRun:
			line = fmt.Sprintf("text %s %s %dpt %s %q", v.Field, v.Weight, v.Size, v.Origin, v.Content)
		case LineStroke:
			line = fmt.Sprintf("line %s %s-%s w=%s", v.Field, v.From, v.To, v.Width)
		case ClosedPolygon:
			parts := make([]string, len(v.Vertices))
			for i, p := range v.Vertices {
				parts[i] = p.String()
			}
			line = fmt.Sprintf("polygon %s %s w=%s", v.Field, strings.Join(parts, " "), v.Width)
		default:
			return fmt.Errorf("unsupported draw instruction %T", in)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// DumpString is Dump into a string. Instructions from this package never
// fail to dump, so the error is dropped.
func DumpString(instrs []DrawInstruction) string {
	var buf bytes.Buffer
	_ = Dump(&buf, instrs)
	return buf.String()
}
