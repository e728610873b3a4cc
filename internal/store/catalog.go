package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// StatusWithdrawn marks a book removed from circulation.
const StatusWithdrawn = "dado_de_baja"

// Location returns the shelf code printed on a label: shelf letter(s)
// upper-cased, the level, and the position padded to two digits.
//
//	Location("c", 4, 34) == "C434"
//	Location("C", 1, 1)  == "C101"
func Location(shelf string, level, position int) string {
	return fmt.Sprintf("%s%d%02d", strings.ToUpper(strings.TrimSpace(shelf)), level, position)
}

// Credential returns the credential record of the reader with id pplID.
// Returns an error wrapping sql.ErrNoRows if no such reader exists.
func (s *Store) Credential(ctx context.Context, pplID string) (ir.CredentialRecord, error) {
	var (
		rec  ir.CredentialRecord
		foto sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, apellido, foto
		FROM ppl
		WHERE id = ?
	`, pplID).Scan(&rec.ID, &rec.GivenName, &rec.FamilyName, &foto)
	if err != nil {
		return ir.CredentialRecord{}, fmt.Errorf("read ppl %q: %w", pplID, err)
	}
	rec.PhotoRef = foto.String
	return rec, nil
}

// BookLabel returns the label record of book bookID, withdrawn or not.
// Returns an error wrapping sql.ErrNoRows if no such book exists.
func (s *Store) BookLabel(ctx context.Context, bookID int64) (ir.BookLabelRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, titulo, autor, estante, nivel, posicion, ubicacion
		FROM libros
		WHERE id = ?
	`, bookID)
	rec, err := scanBookLabel(row)
	if err != nil {
		return ir.BookLabelRecord{}, fmt.Errorf("read libro %d: %w", bookID, err)
	}
	return rec, nil
}

// BookLabelsByShelf returns the label records of every book in circulation
// on shelf, ordered by level then position. The shelf letter is matched
// case-insensitively.
//
// Returns an empty slice (not nil) if the shelf holds no books.
func (s *Store) BookLabelsByShelf(ctx context.Context, shelf string) ([]ir.BookLabelRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, titulo, autor, estante, nivel, posicion, ubicacion
		FROM libros
		WHERE estante = ? AND estado != ?
		ORDER BY nivel ASC, posicion ASC, id ASC
	`, strings.ToUpper(strings.TrimSpace(shelf)), StatusWithdrawn)
	if err != nil {
		return nil, fmt.Errorf("query shelf %q: %w", shelf, err)
	}
	defer rows.Close()

	labels := []ir.BookLabelRecord{}
	for rows.Next() {
		rec, err := scanBookLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shelf %q: %w", shelf, err)
	}
	return labels, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookLabel(row rowScanner) (ir.BookLabelRecord, error) {
	var (
		rec       ir.BookLabelRecord
		author    sql.NullString
		shelf     string
		level     int
		position  int
		ubicacion sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.Title, &author, &shelf, &level, &position, &ubicacion); err != nil {
		return ir.BookLabelRecord{}, err
	}
	rec.Author = author.String
	rec.Location = strings.TrimSpace(ubicacion.String)
	if rec.Location == "" {
		rec.Location = Location(shelf, level, position)
	}
	return rec, nil
}
