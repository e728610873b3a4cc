package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_CredentialText(t *testing.T) {
	out, err := execute(t, "layout", "credential", "--id", "PPL-0042", "--given-name", "Juan", "--family-name", "Pérez")
	require.NoError(t, err)

	assert.Contains(t, out, "credential 85.000 x 54.000 mm")
	assert.Contains(t, out, `text title bold 12pt (5.000,45.000) "CREDENCIAL PPL"`)
	assert.Contains(t, out, `text issue_date regular 6pt (5.000,5.000) "Emisión: 2024-03-15"`)
	assert.Contains(t, out, "fingerprint "+sampleFingerprint())
}

func TestLayout_LabelJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "layout", "label", "--id", "1234", "--title", "Cien años de soledad", "--location", "C434")
	require.NoError(t, err)

	var res LayoutResult
	decodeResponse(t, out, &res)
	assert.Len(t, res.Fingerprint, 64)

	var page struct {
		IRVersion    string           `json:"ir_version"`
		Profile      map[string]any   `json:"profile"`
		Instructions []map[string]any `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(res.Page, &page))
	assert.Equal(t, "1", page.IRVersion)
	assert.Equal(t, "book_label", page.Profile["name"])
	assert.NotEmpty(t, page.Instructions)
}

func TestLayout_EnglishConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.cue", `
lang: "en"
label: title: 14
`)

	out, err := execute(t, "--config", cfg, "layout", "label", "--id", "7", "--title", "Aura", "--location", "C207")
	require.NoError(t, err)
	assert.Contains(t, out, `text title bold 14pt (2.000,26.000) "Aura"`)
	assert.Contains(t, out, `"Location: C207"`)
}
