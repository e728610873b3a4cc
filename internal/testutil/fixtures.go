package testutil

import "github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"

// SampleCredential returns the credential used across golden tests.
func SampleCredential() ir.CredentialRecord {
	return ir.CredentialRecord{
		ID:         "PPL-0042",
		GivenName:  "Juan",
		FamilyName: "Pérez",
		PhotoRef:   "fotos/PPL-0042.jpg",
	}
}

// SampleBookLabel returns the book label used across golden tests.
func SampleBookLabel() ir.BookLabelRecord {
	return ir.BookLabelRecord{
		ID:       1234,
		Title:    "Cien años de soledad",
		Author:   "Gabriel García Márquez",
		Location: "C434",
	}
}
