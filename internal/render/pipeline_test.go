package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/testutil"
)

func TestCredentialPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credencial_PPL-0042.pdf")
	rec := testutil.SampleCredential()
	opts := Options{Layout: fixedEngine(), Serializer: fixedSerializer()}

	res, err := Credential(path, rec, opts)
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.Equal(t, "credential", res.Profile)
	assert.Equal(t, ir.MustFingerprint(ir.CredentialPage, fixedEngine().Credential(rec)), res.Fingerprint)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	w, h := pageSizePt(t, data)
	assert.InDelta(t, 240.94, w, 0.01)
	assert.InDelta(t, 153.07, h, 0.01)
}

func TestBookLabelPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etiqueta_libro_1234.pdf")
	opts := Options{Layout: fixedEngine(), Serializer: fixedSerializer()}

	res, err := BookLabel(path, testutil.SampleBookLabel(), opts)
	require.NoError(t, err)
	assert.Equal(t, "book_label", res.Profile)
	assert.Positive(t, res.Instructions)
	assert.FileExists(t, path)
}

func TestPipelineReportsSinkFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "etiqueta_libro_1234.pdf")

	_, err := BookLabel(path, testutil.SampleBookLabel(), Options{})
	require.Error(t, err)
	assert.True(t, IsSinkUnavailable(err))
	assert.Contains(t, err.Error(), "render book_label")
}
