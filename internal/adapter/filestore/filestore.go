// Package filestore keeps uploaded assets on the local filesystem,
// one directory per store slug.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paratodos/storefront/internal/core/port"
)

var ErrBadName = errors.New("unsafe file name")

var _ port.FileStore = (*FileStore)(nil)

type FileStore struct {
	root string
}

func New(root string) (FileStore, error) {
	const op = "filestore.New"

	abs, err := filepath.Abs(root)
	if err != nil {
		return FileStore{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return FileStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return FileStore{abs}, nil
}

// SaveFile streams src into the slug's directory under a sanitized
// name and returns that name. The directory is created on first use.
func (f FileStore) SaveFile(slug, filename string, src io.Reader) (string, error) {
	const op = "FileStore.SaveFile"

	name, err := sanitize(filename)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	dir, err := f.dirPath(slug)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%s: failed to write %s: %w", op, name, err)
	}
	return name, nil
}

// FilePath resolves a stored file and guarantees the result stays
// under the uploads root.
func (f FileStore) FilePath(slug, filename string) (string, error) {
	const op = "FileStore.FilePath"

	name, err := sanitize(filename)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	dir, err := f.dirPath(slug)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}

// RemoveDir deletes the slug's directory with everything in it.
// Used to clean up uploads when the store insert fails.
func (f FileStore) RemoveDir(slug string) error {
	const op = "FileStore.RemoveDir"

	dir, err := f.dirPath(slug)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f FileStore) dirPath(slug string) (string, error) {
	s, err := sanitize(slug)
	if err != nil {
		return "", err
	}
	path := filepath.Join(f.root, s)
	if !strings.HasPrefix(path, f.root+string(filepath.Separator)) {
		return "", ErrBadName
	}
	return path, nil
}

// sanitize strips any path component and rejects names that would
// escape the store directory.
func sanitize(name string) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return "", ErrBadName
	}
	return name, nil
}
