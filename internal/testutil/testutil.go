package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TempLibrary creates a temporary directory of dummy video files for
// testing. The files have no real container data; tests pair the library
// with a fake probe function.
type TempLibrary struct {
	Path string
	T    *testing.T
}

// NewTempLibrary creates a new temporary video library.
func NewTempLibrary(t *testing.T) *TempLibrary {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "vidseek-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	return &TempLibrary{Path: tmpDir, T: t}
}

// AddFile creates a dummy file under the library with the given mtime.
// Intermediate directories are created as needed.
func (l *TempLibrary) AddFile(relPath string, mtime time.Time) string {
	l.T.Helper()

	path := filepath.Join(l.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		l.T.Fatalf("failed to create dir for %s: %v", relPath, err)
	}
	if err := os.WriteFile(path, []byte("not a real video"), 0644); err != nil {
		l.T.Fatalf("failed to create %s: %v", relPath, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		l.T.Fatalf("failed to set mtime for %s: %v", relPath, err)
	}
	return path
}

// Cleanup removes the temporary library.
func (l *TempLibrary) Cleanup() {
	os.RemoveAll(l.Path)
}

// MustTime parses a wall-clock timestamp or fails the test.
func MustTime(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("invalid test timestamp %q: %v", value, err)
	}
	return parsed
}
