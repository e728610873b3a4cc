// Package layout converts credential and book-label records into the ordered
// draw instructions for their page profile.
//
// Layout is pure: no I/O, no errors. Empty strings render as blank fields,
// and structural elements (the photo frame, the barcode caption) are always
// emitted regardless of optional data. Every font size comes from a
// legibility profile; every caption from a caption set. The only
// time-dependent instruction is the credential's "issue_date" text run.
package layout
