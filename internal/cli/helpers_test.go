package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/testutil"
)

// execute runs the CLI with a frozen clock and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(&RootOptions{Clock: testutil.NewFixedClock(time.Time{})})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decodeResponse parses a JSON CLIResponse whose data decodes into data.
func decodeResponse(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var raw struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), "output: %s", out)
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.CLIResponse
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const seedYAML = `
ppl:
  - id: PPL-0042
    nombre: Juan
    apellido: Pérez
    foto: fotos/PPL-0042.jpg
libros:
  - id: 1234
    titulo: Cien años de soledad
    autor: Gabriel García Márquez
    estante: C
    nivel: 4
    posicion: 34
  - id: 1237
    titulo: Aura
    autor: Carlos Fuentes
    estante: C
    nivel: 2
    posicion: 7
    estado: dado_de_baja
`

// seededCatalogue creates a catalogue through the init-db command.
func seededCatalogue(t *testing.T, dir string) string {
	t.Helper()
	db := filepath.Join(dir, "biblioteca.db")
	seed := writeFile(t, dir, "catalogo.yaml", seedYAML)
	_, err := execute(t, "init-db", db, "--seed", seed)
	require.NoError(t, err)
	return db
}

func mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}
