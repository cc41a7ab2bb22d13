package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Archive implements commpost.Archive at compile time.
var _ commpost.Archive = (*fs.Archive)(nil)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestArchive_Sources(t *testing.T) {
	t.Parallel()

	t.Run("lists pages ordered by id", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "Ugkz2.html"), "<html>two</html>")
		writeFile(t, filepath.Join(dir, "Ugkx1.html"), "<html>1</html>")

		sources, err := fs.NewArchive(dir).Sources(context.Background())

		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, "Ugkx1", sources[0].ID)
		assert.Equal(t, filepath.Join(dir, "Ugkx1.html"), sources[0].Path)
		assert.Equal(t, int64(len("<html>1</html>")), sources[0].Size)
		assert.False(t, sources[0].ModifiedAt.IsZero())
		assert.Equal(t, "Ugkz2", sources[1].ID)
	})

	t.Run("skips directories and dot-files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.html"), "a")
		writeFile(t, filepath.Join(dir, ".DS_Store"), "x")
		writeFile(t, filepath.Join(dir, "nested", "b.html"), "b")

		sources, err := fs.NewArchive(dir).Sources(context.Background())

		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "a", sources[0].ID)
	})

	t.Run("fails on missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewArchive(filepath.Join(t.TempDir(), "missing")).Sources(context.Background())

		require.Error(t, err)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.html"), "a")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewArchive(dir).Sources(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestArchive_ReadSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "p1.html"), "<html>ชอบ</html>")
	archive := fs.NewArchive(dir)
	sources, err := archive.Sources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)

	content, err := archive.ReadSource(context.Background(), sources[0])

	require.NoError(t, err)
	assert.Equal(t, "<html>ชอบ</html>", content)
}

func TestPostID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ugkx1", fs.PostID("Ugkx1.html"))
	assert.Equal(t, "Ugkx1.part", fs.PostID("Ugkx1.part.html"))
	assert.Equal(t, "Ugkx1", fs.PostID("Ugkx1"))
}
