// Package barcode turns identifier strings into vertical bar segments.
//
// The default Synthetic symbology is a visual stand-in: bars follow the
// parity of each rune's code point and are NOT scannable. Code128 produces
// a real, scannable symbol behind the same interface.
//
// Both are deterministic: the same data and box always yield the same
// segments, which golden tests rely on.
package barcode
