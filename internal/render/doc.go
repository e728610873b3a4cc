// Package render serializes draw instructions into a single-page PDF.
//
// The Serializer is the only component that touches the filesystem. Pages
// are built in memory, encoded once, and committed to disk with a
// temp-file-then-rename so a failed render never leaves a truncated file at
// the destination.
//
// Instruction coordinates use a bottom-left origin in micrometres; the PDF
// backend works top-left in millimetres, so y is flipped on the way out.
//
// Usage:
//
//	s := render.NewSerializer()
//	err := s.WriteFile("credencial_PPL-0042.pdf", ir.CredentialPage, instrs)
//	if render.IsSinkUnavailable(err) {
//	    // destination directory missing or not writable
//	}
package render
