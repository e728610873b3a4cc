package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/layout"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/testutil"
)

var mediaBox = regexp.MustCompile(`/MediaBox \[0 0 ([\d.]+) ([\d.]+)\]`)

func fixedSerializer() *Serializer {
	return &Serializer{FontFamily: DefaultFontFamily, Clock: testutil.NewFixedClock(time.Time{})}
}

func fixedEngine() *layout.Engine {
	e := layout.Default()
	e.Clock = testutil.NewFixedClock(time.Time{})
	return e
}

func encodePage(t *testing.T, s *Serializer, profile ir.PageProfile, instrs []ir.DrawInstruction) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf, profile, instrs))
	return buf.Bytes()
}

// pageSizePt extracts the MediaBox of the document in PDF points.
func pageSizePt(t *testing.T, pdf []byte) (float64, float64) {
	t.Helper()
	m := mediaBox.FindSubmatch(pdf)
	require.NotNil(t, m, "document has no MediaBox")
	w, err := strconv.ParseFloat(string(m[1]), 64)
	require.NoError(t, err)
	h, err := strconv.ParseFloat(string(m[2]), 64)
	require.NoError(t, err)
	return w, h
}

func TestCredentialPageSize(t *testing.T) {
	pdf := encodePage(t, fixedSerializer(), ir.CredentialPage, fixedEngine().Credential(testutil.SampleCredential()))

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	w, h := pageSizePt(t, pdf)
	// 85 x 54 mm at 72/25.4 points per millimetre.
	assert.InDelta(t, 240.94, w, 0.01)
	assert.InDelta(t, 153.07, h, 0.01)
}

func TestBookLabelPageSize(t *testing.T) {
	pdf := encodePage(t, fixedSerializer(), ir.BookLabelPage, fixedEngine().BookLabel(testutil.SampleBookLabel()))

	w, h := pageSizePt(t, pdf)
	assert.InDelta(t, 198.43, w, 0.01)
	assert.InDelta(t, 85.04, h, 0.01)
}

func TestSameInputSameBytes(t *testing.T) {
	rec := testutil.SampleCredential()
	a := encodePage(t, fixedSerializer(), ir.CredentialPage, fixedEngine().Credential(rec))
	b := encodePage(t, fixedSerializer(), ir.CredentialPage, fixedEngine().Credential(rec))
	assert.Equal(t, a, b)
}

func TestDocumentDatesFollowClock(t *testing.T) {
	pdf := encodePage(t, fixedSerializer(), ir.BookLabelPage, fixedEngine().BookLabel(testutil.SampleBookLabel()))
	assert.Contains(t, string(pdf), "D:20240315120000")

	later := fixedSerializer()
	later.Clock.(*testutil.FixedClock).Advance(24 * time.Hour)
	other := encodePage(t, later, ir.BookLabelPage, fixedEngine().BookLabel(testutil.SampleBookLabel()))
	assert.NotEqual(t, pdf, other)
}

func TestCredentialWithoutPhotoRenders(t *testing.T) {
	rec := testutil.SampleCredential()
	rec.PhotoRef = ""
	path := filepath.Join(t.TempDir(), "credencial_PPL-0042.pdf")

	require.NoError(t, fixedSerializer().WriteFile(path, ir.CredentialPage, fixedEngine().Credential(rec)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no-such-dir", "etiqueta_libro_1234.pdf")

	err := fixedSerializer().WriteFile(path, ir.BookLabelPage, fixedEngine().BookLabel(testutil.SampleBookLabel()))
	require.Error(t, err)
	assert.True(t, IsSinkUnavailable(err), "got %v", err)
	assert.False(t, IsFontUnavailable(err))

	var de *DocumentError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, path, de.Path)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "etiqueta_libro_1234.pdf")
	instrs := fixedEngine().BookLabel(testutil.SampleBookLabel())

	require.NoError(t, fixedSerializer().WriteFile(path, ir.BookLabelPage, instrs))
	// Rendering again replaces the file in place.
	require.NoError(t, fixedSerializer().WriteFile(path, ir.BookLabelPage, instrs))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "etiqueta_libro_1234.pdf", entries[0].Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, encodePage(t, fixedSerializer(), ir.BookLabelPage, instrs), data)
}

func TestOutOfPageInstructionRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	instrs := []ir.DrawInstruction{
		ir.TextRun{Field: "title", Origin: ir.Pt(90, 10), Weight: ir.Bold, Size: 12, Content: "x"},
	}

	err := fixedSerializer().WriteFile(path, ir.CredentialPage, instrs)
	require.Error(t, err)
	assert.True(t, IsSerializationFailure(err), "got %v", err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed render must not leave files behind")
}

func TestUnknownFontFamily(t *testing.T) {
	s := fixedSerializer()
	s.FontFamily = "Comic Sans"

	err := s.Write(&bytes.Buffer{}, ir.CredentialPage, fixedEngine().Credential(testutil.SampleCredential()))
	require.Error(t, err)
	assert.True(t, IsFontUnavailable(err), "got %v", err)
}

func TestUnknownFontWeight(t *testing.T) {
	instrs := []ir.DrawInstruction{
		ir.TextRun{Field: "title", Origin: ir.Pt(5, 45), Weight: "italic", Size: 12, Content: "x"},
	}
	err := fixedSerializer().Write(&bytes.Buffer{}, ir.CredentialPage, instrs)
	assert.True(t, IsFontUnavailable(err), "got %v", err)
}

func TestDegeneratePolygonRejected(t *testing.T) {
	instrs := []ir.DrawInstruction{
		ir.ClosedPolygon{Field: "photo_frame", Vertices: []ir.Point{ir.Pt(1, 1), ir.Pt(2, 2)}},
	}
	err := fixedSerializer().Write(&bytes.Buffer{}, ir.CredentialPage, instrs)
	assert.True(t, IsSerializationFailure(err), "got %v", err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSinkFailure(t *testing.T) {
	err := fixedSerializer().Write(failingWriter{}, ir.BookLabelPage, fixedEngine().BookLabel(testutil.SampleBookLabel()))
	require.Error(t, err)
	assert.True(t, IsSinkUnavailable(err))
	assert.Contains(t, err.Error(), "disk full")
}

func TestZeroSerializerIsUsable(t *testing.T) {
	var s Serializer
	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf, ir.BookLabelPage, fixedEngine().BookLabel(testutil.SampleBookLabel())))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestEncodeText(t *testing.T) {
	assert.Equal(t, "Emisi\xf3n", EncodeText("Emisión"))
	assert.Equal(t, "C\xf3digo", EncodeText("Co\u0301digo"))
	assert.Equal(t, "Ubicaci\xf3n: C434", EncodeText("Ubicación: C434"))
	assert.Equal(t, "? ok", EncodeText("\u6f22 ok"))
}

func TestDocumentErrorMessage(t *testing.T) {
	err := &DocumentError{
		Code:    ErrCodeSinkUnavailable,
		Message: "create temporary file in /nope",
		Path:    "/nope/x.pdf",
		Err:     os.ErrNotExist,
	}
	assert.Equal(t, "SINK_UNAVAILABLE: create temporary file in /nope (path=/nope/x.pdf): file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
