// Package fsio provides the file loader and the atomic-save primitive.
//
// Saves write to a uniquely named temporary file in the target's directory
// and then rename it over the target, so a concurrent reader observes either
// the prior full content or the new full content, never a partial write.
// Atomicity holds at the filesystem level only; two concurrent writers are
// still a last-writer-wins race.
package fsio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ReadFile returns the raw bytes of the file at path. Errors are filesystem
// errors (not-found, permission, is-a-directory) and are always fatal to the
// caller, never folded into a recoverable outcome.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic writes data to path atomically. The temporary file lives in
// the same directory as path so the final rename cannot cross filesystems.
// An existing target keeps its permission bits; a new file is created 0644.
func WriteFileAtomic(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf("%s.tmp.%d.%s", filepath.Base(path), os.Getpid(), uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
