package layout

import (
	"fmt"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// CredentialLegibility governs every font size on the credential card.
type CredentialLegibility struct {
	Title        ir.FontSize `json:"title"`
	Name         ir.FontSize `json:"name"`
	ID           ir.FontSize `json:"id"`
	Caption      ir.FontSize `json:"caption"`
	PhotoCaption ir.FontSize `json:"photo_caption"`
	IssueDate    ir.FontSize `json:"issue_date"`
}

// LabelLegibility governs every font size on the book label.
type LabelLegibility struct {
	Title    ir.FontSize `json:"title"`
	Author   ir.FontSize `json:"author"`
	ID       ir.FontSize `json:"id"`
	Location ir.FontSize `json:"location"`
	Caption  ir.FontSize `json:"caption"`
}

// DefaultCredentialLegibility matches the printed credential stock.
var DefaultCredentialLegibility = CredentialLegibility{
	Title:        12,
	Name:         10,
	ID:           8,
	Caption:      6,
	PhotoCaption: 8,
	IssueDate:    6,
}

// DefaultLabelLegibility matches the printed label stock.
var DefaultLabelLegibility = LabelLegibility{
	Title:    10,
	Author:   8,
	ID:       8,
	Location: 7,
	Caption:  6,
}

// Captions holds the fixed wording printed around the record data.
type Captions struct {
	Lang           string
	CredentialHead string // title block of the credential
	Barcode        string // caption above the bars
	Code128Prefix  string // caption below the bars, followed by the ID
	Photo          string // centred in the photo frame
	IssuedPrefix   string // followed by YYYY-MM-DD
	IDPrefix       string
	LocationPrefix string
}

// Caption sets. Spanish is the wording of the institution's card stock.
var (
	CaptionsES = Captions{
		Lang:           "es",
		CredentialHead: "CREDENCIAL PPL",
		Barcode:        "Código de barras:",
		Code128Prefix:  "CODE128: ",
		Photo:          "FOTO",
		IssuedPrefix:   "Emisión: ",
		IDPrefix:       "ID: ",
		LocationPrefix: "Ubicación: ",
	}
	CaptionsEN = Captions{
		Lang:           "en",
		CredentialHead: "INMATE CREDENTIAL",
		Barcode:        "Barcode:",
		Code128Prefix:  "CODE128: ",
		Photo:          "PHOTO",
		IssuedPrefix:   "Issued: ",
		IDPrefix:       "ID: ",
		LocationPrefix: "Location: ",
	}
)

// CaptionsFor returns the caption set for lang ("es" or "en").
func CaptionsFor(lang string) (Captions, error) {
	switch lang {
	case "", "es":
		return CaptionsES, nil
	case "en":
		return CaptionsEN, nil
	default:
		return Captions{}, fmt.Errorf("unsupported caption language %q: must be es or en", lang)
	}
}

// Fixed credential geometry (85x54 mm), baselines from the bottom-left.
var credentialGeometry = struct {
	Title, Name, ID, BarcodeCaption ir.Point
	BarcodeOrigin                   ir.Point
	BarcodeWidth, BarcodeHeight     ir.Length
	Code128Caption                  ir.Point
	PhotoMin, PhotoMax              ir.Point
	PhotoCaption                    ir.Point
	IssueDate                       ir.Point
}{
	Title:          ir.Pt(5, 45),
	Name:           ir.Pt(5, 38),
	ID:             ir.Pt(5, 32),
	BarcodeCaption: ir.Pt(5, 26),
	BarcodeOrigin:  ir.Pt(5, 22),
	BarcodeWidth:   ir.MM(40),
	BarcodeHeight:  ir.MM(3),
	Code128Caption: ir.Pt(5, 18),
	PhotoMin:       ir.Pt(55, 25),
	PhotoMax:       ir.Pt(75, 40),
	PhotoCaption:   ir.Pt(60, 32),
	IssueDate:      ir.Pt(5, 5),
}

// Fixed book label geometry (70x30 mm).
var labelGeometry = struct {
	Title, Author, ID, Location, BarcodeCaption ir.Point
	BarcodeOrigin                               ir.Point
	BarcodeWidth, BarcodeHeight                 ir.Length
	Code128Caption                              ir.Point
}{
	Title:          ir.Pt(2, 26),
	Author:         ir.Pt(2, 22),
	ID:             ir.Pt(2, 18),
	Location:       ir.Pt(2, 14),
	BarcodeCaption: ir.Pt(2, 10),
	BarcodeOrigin:  ir.Pt(2, 6),
	BarcodeWidth:   ir.MM(50),
	BarcodeHeight:  ir.MM(3),
	Code128Caption: ir.Pt(2, 2),
}
