package layout

import (
	"strconv"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/barcode"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// Field names carried by the emitted instructions.
const (
	FieldTitle          = "title"
	FieldName           = "name"
	FieldAuthor         = "author"
	FieldID             = "id"
	FieldLocation       = "location"
	FieldBarcodeCaption = "barcode_caption"
	FieldBarcode        = "barcode"
	FieldCode128Caption = "code128_caption"
	FieldPhotoFrame     = "photo_frame"
	FieldPhotoCaption   = "photo_caption"
	FieldIssueDate      = "issue_date"
)

// Engine lays out pages. The zero value is not usable; start from Default.
type Engine struct {
	CredentialSizes CredentialLegibility
	LabelSizes      LabelLegibility
	Captions        Captions
	Symbology       barcode.Symbology
	Clock           Clock
}

// Default returns the engine matching the institution's card and label
// stock: Spanish captions, synthetic bars, wall-clock issue dates.
func Default() *Engine {
	return &Engine{
		CredentialSizes: DefaultCredentialLegibility,
		LabelSizes:      DefaultLabelLegibility,
		Captions:        CaptionsES,
		Symbology:       barcode.Synthetic{},
		Clock:           SystemClock{},
	}
}

// Credential lays out rec with the default engine.
func Credential(rec ir.CredentialRecord) []ir.DrawInstruction {
	return Default().Credential(rec)
}

// BookLabel lays out rec with the default engine.
func BookLabel(rec ir.BookLabelRecord) []ir.DrawInstruction {
	return Default().BookLabel(rec)
}

// Credential returns the instructions for an ir.CredentialPage, in draw
// order. The photo frame and its caption are always present, frame first;
// PhotoRef is never read.
func (e *Engine) Credential(rec ir.CredentialRecord) []ir.DrawInstruction {
	g := credentialGeometry
	sizes := e.CredentialSizes
	c := e.Captions

	instrs := []ir.DrawInstruction{
		text(FieldTitle, g.Title, ir.Bold, sizes.Title, c.CredentialHead),
		text(FieldName, g.Name, ir.Bold, sizes.Name, rec.FullName()),
		text(FieldID, g.ID, ir.Bold, sizes.ID, c.IDPrefix+rec.ID),
		text(FieldBarcodeCaption, g.BarcodeCaption, ir.Bold, sizes.Caption, c.Barcode),
	}
	bars := e.symbology().Bars(rec.ID, g.BarcodeOrigin, g.BarcodeWidth, g.BarcodeHeight)
	instrs = append(instrs, barcode.Instructions(FieldBarcode, bars)...)
	instrs = append(instrs,
		text(FieldCode128Caption, g.Code128Caption, ir.Bold, sizes.Caption, c.Code128Prefix+rec.ID),
		ir.Rect(FieldPhotoFrame, g.PhotoMin, g.PhotoMax),
		text(FieldPhotoCaption, g.PhotoCaption, ir.Regular, sizes.PhotoCaption, c.Photo),
		text(FieldIssueDate, g.IssueDate, ir.Regular, sizes.IssueDate, c.IssuedPrefix+issueDate(e.clock())),
	)
	return instrs
}

// BookLabel returns the instructions for an ir.BookLabelPage, in draw order.
func (e *Engine) BookLabel(rec ir.BookLabelRecord) []ir.DrawInstruction {
	g := labelGeometry
	sizes := e.LabelSizes
	c := e.Captions
	id := strconv.FormatInt(rec.ID, 10)

	instrs := []ir.DrawInstruction{
		text(FieldTitle, g.Title, ir.Bold, sizes.Title, rec.Title),
		text(FieldAuthor, g.Author, ir.Regular, sizes.Author, rec.Author),
		text(FieldID, g.ID, ir.Regular, sizes.ID, c.IDPrefix+id),
		text(FieldLocation, g.Location, ir.Regular, sizes.Location, c.LocationPrefix+rec.Location),
		text(FieldBarcodeCaption, g.BarcodeCaption, ir.Regular, sizes.Caption, c.Barcode),
	}
	bars := e.symbology().Bars(id, g.BarcodeOrigin, g.BarcodeWidth, g.BarcodeHeight)
	instrs = append(instrs, barcode.Instructions(FieldBarcode, bars)...)
	instrs = append(instrs,
		text(FieldCode128Caption, g.Code128Caption, ir.Regular, sizes.Caption, c.Code128Prefix+id),
	)
	return instrs
}

func (e *Engine) symbology() barcode.Symbology {
	if e.Symbology == nil {
		return barcode.Synthetic{}
	}
	return e.Symbology
}

func (e *Engine) clock() Clock {
	if e.Clock == nil {
		return SystemClock{}
	}
	return e.Clock
}

func text(field string, at ir.Point, weight ir.FontWeight, size ir.FontSize, content string) ir.TextRun {
	return ir.TextRun{Field: field, Origin: at, Weight: weight, Size: size, Content: content}
}
