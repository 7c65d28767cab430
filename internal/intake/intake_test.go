package intake

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/decision-copilot/internal/wizard"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestNewFilterNormalises(t *testing.T) {
	f := NewFilter("CSV", ".json", " csv ", "")
	assert.Equal(t, []string{".csv", ".json"}, f.Extensions())
	assert.Equal(t, DefaultExtensions, NewFilter().Extensions())
	assert.Equal(t, "CSV, XLSX, JSON, PDF", NewFilter().Describe())
}

func TestFilterAllows(t *testing.T) {
	f := NewFilter()
	for _, name := range []string{"q3.csv", "Budget.XLSX", "a/b/data.json", "memo.pdf"} {
		assert.True(t, f.Allows(name), name)
	}
	for _, name := range []string{"notes.txt", "archive", "csv", "q3.csv.bak"} {
		assert.False(t, f.Allows(name), name)
	}
}

func TestResolveReturnsNameAndSize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q3.csv", 1024)
	got, err := NewFilter().Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, &wizard.Artifact{Name: "q3.csv", Size: 1024}, got)
}

func TestResolveDroppedForms(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "north east.xlsx", 10)
	escaped := filepath.Join(dir, `north\ east.xlsx`)
	for _, raw := range []string{
		"'" + path + "'",
		`"` + path + `"`,
		"file://" + path,
		escaped + " \n",
	} {
		got, err := NewFilter().Resolve(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "north east.xlsx", got.Name, raw)
	}
}

func TestResolveRejections(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", 3)
	sub := filepath.Join(dir, "folder.csv")
	require.NoError(t, os.Mkdir(sub, 0o755))

	_, err := NewFilter().Resolve("   ")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = NewFilter().Resolve(txt)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = NewFilter().Resolve(sub)
	assert.ErrorIs(t, err, ErrNotAFile)

	_, err = NewFilter().Resolve(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCleanDroppedPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "data", "q3.csv"), CleanDroppedPath("~/data/q3.csv"))
	assert.Equal(t, "", CleanDroppedPath("''"))
}
