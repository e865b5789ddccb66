package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	t.Run("SaveAndResolve", func(t *testing.T) {
		fs, err := New(t.TempDir())
		require.NoError(t, err)

		stored, err := fs.SaveFile("acme-shop", "logo.png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "logo.png", stored)

		path, err := fs.FilePath("acme-shop", "logo.png")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
	})

	t.Run("PathComponentsStripped", func(t *testing.T) {
		fs, err := New(t.TempDir())
		require.NoError(t, err)

		stored, err := fs.SaveFile("acme-shop", "dir/catalog.pdf", strings.NewReader("pdf"))
		require.NoError(t, err)
		assert.Equal(t, "catalog.pdf", stored)
	})

	t.Run("TraversalRejected", func(t *testing.T) {
		fs, err := New(t.TempDir())
		require.NoError(t, err)

		_, err = fs.SaveFile("acme-shop", "..", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrBadName)

		_, err = fs.FilePath("..", "logo.png")
		assert.ErrorIs(t, err, ErrBadName)
	})

	t.Run("MissingFile", func(t *testing.T) {
		fs, err := New(t.TempDir())
		require.NoError(t, err)

		_, err = fs.FilePath("acme-shop", "nope.png")
		require.Error(t, err)
	})

	t.Run("RemoveDir", func(t *testing.T) {
		root := t.TempDir()
		fs, err := New(root)
		require.NoError(t, err)

		_, err = fs.SaveFile("acme-shop", "logo.png", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, fs.RemoveDir("acme-shop"))
		_, err = os.Stat(filepath.Join(root, "acme-shop"))
		assert.True(t, os.IsNotExist(err))
	})
}
