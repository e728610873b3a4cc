package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person is a ppl row.
type Person struct {
	ID         string `yaml:"id"`
	GivenName  string `yaml:"nombre"`
	FamilyName string `yaml:"apellido"`
	Photo      string `yaml:"foto,omitempty"`
}

// Book is a libros row. An empty Status means available.
type Book struct {
	ID       int64  `yaml:"id"`
	Title    string `yaml:"titulo"`
	Author   string `yaml:"autor"`
	Genre    string `yaml:"genero,omitempty"`
	Shelf    string `yaml:"estante"`
	Level    int    `yaml:"nivel"`
	Position int    `yaml:"posicion"`
	Location string `yaml:"ubicacion,omitempty"`
	Status   string `yaml:"estado,omitempty"`
}

// Issuance records one printed credential.
type Issuance struct {
	ID          string
	PPLID       string
	Photo       string
	IssuedAt    time.Time
	Fingerprint string
}

// WritePerson inserts a reader.
// Uses ON CONFLICT(id) DO NOTHING - an existing reader is left untouched.
func (s *Store) WritePerson(ctx context.Context, p Person) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ppl (id, nombre, apellido, foto)
		VALUES (?, ?, ?, NULLIF(?, ''))
		ON CONFLICT(id) DO NOTHING
	`, p.ID, p.GivenName, p.FamilyName, p.Photo)
	if err != nil {
		return fmt.Errorf("write ppl %q: %w", p.ID, err)
	}
	return nil
}

// WriteBook inserts a book. The shelf letter is stored upper-cased.
// Uses ON CONFLICT(id) DO NOTHING - an existing book is left untouched.
func (s *Store) WriteBook(ctx context.Context, b Book) error {
	status := b.Status
	if status == "" {
		status = "disponible"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO libros (id, titulo, autor, genero, estante, nivel, posicion, ubicacion, estado)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?, NULLIF(?, ''), ?)
		ON CONFLICT(id) DO NOTHING
	`,
		b.ID,
		b.Title,
		b.Author,
		b.Genre,
		strings.ToUpper(strings.TrimSpace(b.Shelf)),
		b.Level,
		b.Position,
		b.Location,
		status,
	)
	if err != nil {
		return fmt.Errorf("write libro %d: %w", b.ID, err)
	}
	return nil
}

// RecordIssuance logs a printed credential and returns the stored entry.
// A missing ID is filled with a UUIDv7 so entries sort by issue time.
// The reader must exist (foreign key constraint).
func (s *Store) RecordIssuance(ctx context.Context, iss Issuance) (Issuance, error) {
	if iss.ID == "" {
		iss.ID = uuid.Must(uuid.NewV7()).String()
	}
	iss.IssuedAt = iss.IssuedAt.UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credenciales (id, id_ppl, foto, fecha_emision, huella)
		VALUES (?, ?, NULLIF(?, ''), ?, ?)
	`, iss.ID, iss.PPLID, iss.Photo, iss.IssuedAt.Format(time.RFC3339), iss.Fingerprint)
	if err != nil {
		return Issuance{}, fmt.Errorf("record credential for %q: %w", iss.PPLID, err)
	}
	return iss, nil
}

// Issuances returns the credentials issued to pplID, oldest first.
// Returns an empty slice (not nil) if none were issued.
func (s *Store) Issuances(ctx context.Context, pplID string) ([]Issuance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, id_ppl, COALESCE(foto, ''), fecha_emision, huella
		FROM credenciales
		WHERE id_ppl = ?
		ORDER BY fecha_emision ASC, id COLLATE BINARY ASC
	`, pplID)
	if err != nil {
		return nil, fmt.Errorf("query credenciales: %w", err)
	}
	defer rows.Close()

	out := []Issuance{}
	for rows.Next() {
		var (
			iss    Issuance
			issued string
		)
		if err := rows.Scan(&iss.ID, &iss.PPLID, &iss.Photo, &issued, &iss.Fingerprint); err != nil {
			return nil, fmt.Errorf("scan credencial: %w", err)
		}
		iss.IssuedAt, err = time.Parse(time.RFC3339, issued)
		if err != nil {
			return nil, fmt.Errorf("parse fecha_emision %q: %w", issued, err)
		}
		out = append(out, iss)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credenciales: %w", err)
	}
	return out, nil
}
