package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore opens a fresh catalogue in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "biblioteca.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedCatalogue writes a small shelf C plus one reader.
func seedCatalogue(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	people := []Person{
		{ID: "PPL-0042", GivenName: "Juan", FamilyName: "Pérez", Photo: "fotos/PPL-0042.jpg"},
		{ID: "PPL-0043", GivenName: "María", FamilyName: "Gómez"},
	}
	for _, p := range people {
		if err := s.WritePerson(ctx, p); err != nil {
			t.Fatalf("WritePerson(%s) failed: %v", p.ID, err)
		}
	}

	books := []Book{
		{ID: 1234, Title: "Cien años de soledad", Author: "Gabriel García Márquez", Shelf: "C", Level: 4, Position: 34},
		{ID: 1235, Title: "Pedro Páramo", Author: "Juan Rulfo", Shelf: "c", Level: 1, Position: 1, Location: "Estante C-1-01"},
		{ID: 1236, Title: "Rayuela", Shelf: "C", Level: 4, Position: 2},
		{ID: 1237, Title: "Aura", Author: "Carlos Fuentes", Shelf: "C", Level: 2, Position: 7, Status: StatusWithdrawn},
		{ID: 2001, Title: "Ficciones", Author: "Jorge Luis Borges", Shelf: "A", Level: 1, Position: 5},
	}
	for _, b := range books {
		if err := s.WriteBook(ctx, b); err != nil {
			t.Fatalf("WriteBook(%d) failed: %v", b.ID, err)
		}
	}
}
