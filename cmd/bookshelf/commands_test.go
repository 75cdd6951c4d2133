package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCLI moves the test into an empty working directory with a known
// environment, so neither a local .env nor the caller's variables leak in.
// It returns that directory.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CATALOG_FILE", "")
	t.Setenv("CATALOG_BACKEND", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

// run executes the CLI and returns stdout. A non-empty path is passed as --file.
func run(t *testing.T, path string, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	if path != "" {
		args = append([]string{"--file", path}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_Commands(t *testing.T) {
	path := filepath.Join(setupCLI(t), "library.json")

	out, err := run(t, path, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "The library has no books.")

	out, err = run(t, path, "", "add", "Test Title", "Test Author", "2021")
	require.NoError(t, err)
	assert.Contains(t, out, "added to the library with id 1")

	out, err = run(t, path, "", "add", "Another Title", "Another Author", "2022")
	require.NoError(t, err)
	assert.Contains(t, out, "with id 2")

	out, err = run(t, path, "", "status", "2", "lent")
	require.NoError(t, err)
	assert.Contains(t, out, "updated to 'lent'")

	out, err = run(t, path, "", "search", "--by", "author", "another")
	require.NoError(t, err)
	assert.Contains(t, out, "Another Title")
	assert.NotContains(t, out, "Test Title")

	out, err = run(t, path, "", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Book with id 1 deleted")

	out, err = run(t, path, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Another Title")
	assert.Contains(t, out, "lent")
	assert.NotContains(t, out, "Test Title")
}

func TestCLI_Errors(t *testing.T) {
	path := filepath.Join(setupCLI(t), "library.json")

	_, err := run(t, path, "", "add", "A", "B", "soon")
	assert.Error(t, err)

	_, err = run(t, path, "", "delete", "42")
	assert.ErrorContains(t, err, "not found")

	_, err = run(t, path, "", "status", "x", "lent")
	assert.Error(t, err)

	_, err = run(t, path, "", "status", "1", "lost")
	assert.Error(t, err)

	_, err = run(t, path, "", "search", "--by", "isbn", "x")
	assert.Error(t, err)
}

func TestCLI_Interactive(t *testing.T) {
	path := filepath.Join(setupCLI(t), "library.json")

	out, err := run(t, path, "1\nDune\nFrank Herbert\n1965\n4\n6\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Menu:")
	assert.Contains(t, out, "Book 'Dune' added to the library with id 1.")

	out, err = run(t, path, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Frank Herbert")
}

func TestCLI_IgnoresStrayDotEnv(t *testing.T) {
	dir := setupCLI(t)
	// a .env must not override variables that are already set
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_BACKEND=postgres\nLOG_LEVEL=loud\n"), 0644))

	out, err := run(t, filepath.Join(dir, "library.json"), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "The library has no books.")
}

func TestCLI_DotEnvSuppliesDefaults(t *testing.T) {
	dir := setupCLI(t)
	require.NoError(t, os.Unsetenv("CATALOG_FILE"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_FILE=from-env.json\n"), 0644))

	_, err := run(t, "", "", "add", "Dune", "Frank Herbert", "1965")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "from-env.json"))
}

func TestCLI_SQLiteBackendDefaultPath(t *testing.T) {
	dir := setupCLI(t)

	_, err := run(t, "", "", "--backend", "sqlite", "add", "Dune", "Frank Herbert", "1965")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "library.db"))
	assert.NoFileExists(t, filepath.Join(dir, "library.json"))

	out, err := run(t, "", "", "--backend", "sqlite", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
}
