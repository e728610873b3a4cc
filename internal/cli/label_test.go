package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/layout"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/render"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/testutil"
)

func TestLabel_FromFlags(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "label", "--id", "1234", "--title", "Cien años de soledad",
		"--author", "Gabriel García Márquez", "--location", "C434", "--dir", dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "etiqueta_libro_1234.pdf"))
	assert.Contains(t, out, "Etiqueta Libro 1234")
	assert.Contains(t, out, ir.MustFingerprint(ir.BookLabelPage, layout.BookLabel(testutil.SampleBookLabel())))
}

func TestLabel_FromCatalogueDerivesLocation(t *testing.T) {
	dir := t.TempDir()
	db := seededCatalogue(t, dir)

	out, err := execute(t, "--format", "json", "label", "--db", db, "--book", "1234", "--dir", dir)
	require.NoError(t, err)

	var res render.Result
	decodeResponse(t, out, &res)
	// Seeded without ubicacion: C + 4 + 34 prints as C434, same as the sample.
	assert.Equal(t, ir.MustFingerprint(ir.BookLabelPage, layout.BookLabel(testutil.SampleBookLabel())), res.Fingerprint)
	assert.FileExists(t, filepath.Join(dir, "etiqueta_libro_1234.pdf"))
}

func TestLabel_BookNeedsDatabase(t *testing.T) {
	_, err := execute(t, "label", "--book", "1234")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLabel_UnknownBook(t *testing.T) {
	dir := t.TempDir()
	db := seededCatalogue(t, dir)

	_, err := execute(t, "label", "--db", db, "--book", "77", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestLabel_StrictRejectsZeroID(t *testing.T) {
	_, err := execute(t, "label", "--title", "X", "--author", "Y", "--location", "C101", "--dir", t.TempDir(), "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeInputIncomplete)
}
