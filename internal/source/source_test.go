package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gc.log")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestOpenGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gc.log.1.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("compressed line\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "compressed line\n", string(data))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.log"))
	assert.Error(t, err)
}

func TestExpandLiteralPath(t *testing.T) {
	paths, err := Expand("/var/log/gc.log")
	require.NoError(t, err)
	assert.Equal(t, []string{"/var/log/gc.log"}, paths)
}

func TestExpandRotatedSet(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"gc.log.0", "gc.log.1", "gc.log.2", "other.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	paths, err := Expand(filepath.Join(dir, "gc.log.*"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "gc.log.0"),
		filepath.Join(dir, "gc.log.1"),
		filepath.Join(dir, "gc.log.2"),
	}, paths)
}

func TestExpandNoMatches(t *testing.T) {
	_, err := Expand(filepath.Join(t.TempDir(), "*.log"))
	assert.Error(t, err)
}

func TestFollowDeliversAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gc.log")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lines := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, 10*time.Millisecond, lines)
	}()

	assert.Equal(t, "first", <-lines)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "second", <-lines)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
