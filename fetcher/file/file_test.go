package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := "HOST=localhost\nPORT=8080\n"

	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envPath, []byte(content), 0o600)
	require.NoError(t, err)

	fetcher := NewFetcher(envPath)

	text, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestFetcher_Fetch_FileNotFound(t *testing.T) {
	t.Parallel()

	fetcher := NewFetcher("/nonexistent/path/.env")

	text, err := fetcher.Fetch()

	require.Error(t, err)
	assert.Empty(t, text)
	assert.Contains(t, err.Error(), "stat file")
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestFetcher_Fetch_EmptyFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envPath, []byte{}, 0o600)
	require.NoError(t, err)

	fetcher := NewFetcher(envPath)

	text, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFetcher_Fetch_DirectoryPath(t *testing.T) {
	t.Parallel()

	fetcher := NewFetcher(t.TempDir())

	text, err := fetcher.Fetch()

	require.Error(t, err)
	assert.Empty(t, text)
	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestFetcher_Fetch_SeesCurrentContent(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envPath, []byte("VERSION=1\n"), 0o600)
	require.NoError(t, err)

	fetcher := NewFetcher(envPath)

	text, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "VERSION=1\n", text)

	// The file is read on every call, not cached at construction.
	err = os.WriteFile(envPath, []byte("VERSION=2\n"), 0o600)
	require.NoError(t, err)

	text, err = fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "VERSION=2\n", text)
}

func TestNewFetcher_CleansPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envPath, []byte("A=1\n"), 0o600)
	require.NoError(t, err)

	fetcher := NewFetcher(tmpDir + "/sub/../.env")

	assert.Equal(t, envPath, fetcher.filepath)

	text, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", text)
}
