package ir

import (
	"fmt"
	"strings"
)

// CredentialRecord holds the data printed on an incarcerated person's
// library credential. Created by the caller per print request.
type CredentialRecord struct {
	ID         string `json:"id" yaml:"id"`
	GivenName  string `json:"given_name" yaml:"given_name"`
	FamilyName string `json:"family_name" yaml:"family_name"`

	// PhotoRef is an opaque path or URI. It is never dereferenced; the photo
	// frame is drawn whether or not it is set.
	PhotoRef string `json:"photo_ref,omitempty" yaml:"photo_ref,omitempty"`
}

// BookLabelRecord holds the data printed on a catalogued book's label.
type BookLabelRecord struct {
	ID       int64  `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Author   string `json:"author" yaml:"author"`
	Location string `json:"location" yaml:"location"`
}

// FullName joins given and family name the way the credential prints it.
func (r CredentialRecord) FullName() string {
	return fmt.Sprintf("%s %s", r.GivenName, r.FamilyName)
}

// InputError reports required record fields that are missing.
//
// The layout engine never returns it: it renders empty strings as blank
// fields. Callers that want to refuse incomplete input call Validate first.
type InputError struct {
	Record  string   // "credential" | "book_label"
	Missing []string // field names, in declaration order
}

func (e *InputError) Error() string {
	return fmt.Sprintf("INPUT_INCOMPLETE: %s record missing %s", e.Record, strings.Join(e.Missing, ", "))
}

// Validate checks that every required field is present.
// Returns nil or an *InputError.
func (r CredentialRecord) Validate() error {
	var missing []string
	if strings.TrimSpace(r.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(r.GivenName) == "" {
		missing = append(missing, "given_name")
	}
	if strings.TrimSpace(r.FamilyName) == "" {
		missing = append(missing, "family_name")
	}
	if len(missing) > 0 {
		return &InputError{Record: CredentialPage.Name, Missing: missing}
	}
	return nil
}

// Validate checks that every required field is present.
// Book IDs come from an autoincrement column, so they must be positive.
func (r BookLabelRecord) Validate() error {
	var missing []string
	if r.ID <= 0 {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(r.Author) == "" {
		missing = append(missing, "author")
	}
	if strings.TrimSpace(r.Location) == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return &InputError{Record: BookLabelPage.Name, Missing: missing}
	}
	return nil
}
