// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFile = ".notepub.lock"

// ErrOutputLocked means another publish holds the output directory.
var ErrOutputLocked = errors.New("output directory is locked by another publish")

// Output writes the generated site under a root directory. It holds an
// exclusive lock on the directory from OpenOutput until Close.
type Output struct {
	root string
	lock *flock.Flock
}

// OpenOutput creates root if needed and locks it.
func OpenOutput(root string) (*Output, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	lock := flock.New(filepath.Join(root, lockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, root)
	}
	return &Output{root: root, lock: lock}, nil
}

// Close releases the lock.
func (o *Output) Close() error {
	if err := o.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	_ = os.Remove(o.lock.Path())
	return nil
}

// WriteArticle writes the page for slug at "<slug>.html".
func (o *Output) WriteArticle(slug, page string) (string, error) {
	return o.Write(slug+".html", page)
}

// Write writes content to the slash-separated path rel under the root,
// creating parent directories, and returns the full path.
func (o *Output) Write(rel, content string) (string, error) {
	path := filepath.Join(o.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", rel, err)
	}
	return path, nil
}

// WriteFileAtomic writes data to a temporary file beside path and renames
// it into place.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp.%s.%d", base, os.Getpid()))

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	if dirf, err := os.Open(dir); err == nil {
		_ = dirf.Sync()
		_ = dirf.Close()
	}
	return nil
}
