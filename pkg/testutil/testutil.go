// Package testutil provides helpers for tests that lay out duplicate files
// on disk and feed detector output to the engine.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateFile creates a file with the given content in the specified directory,
// creating parent directories as needed. It returns the file path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateDuplicates writes content to every name under dir and returns the
// created paths in argument order.
func CreateDuplicates(t *testing.T, dir, content string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = CreateFile(t, dir, name, content)
	}
	return paths
}

// Listing renders duplicate sets the way the detector prints them.
func Listing(size int64, sets ...[]string) string {
	unit := "bytes"
	if size == 1 {
		unit = "byte"
	}
	blocks := make([]string, len(sets))
	for i, set := range sets {
		blocks[i] = fmt.Sprintf("%d %s each:\n%s\n", size, unit, strings.Join(set, "\n"))
	}
	return strings.Join(blocks, "\n")
}

// AssertSameFile fails the test unless both paths name the same inode.
func AssertSameFile(t *testing.T, a, b string) {
	t.Helper()
	ai, err := os.Stat(a)
	if err != nil {
		t.Fatalf("Failed to stat %s: %v", a, err)
	}
	bi, err := os.Stat(b)
	if err != nil {
		t.Fatalf("Failed to stat %s: %v", b, err)
	}
	if !os.SameFile(ai, bi) {
		t.Errorf("Expected %s and %s to be the same file", a, b)
	}
}

// AssertSymlink fails the test unless link is a symlink pointing to target.
func AssertSymlink(t *testing.T, link, target string) {
	t.Helper()
	got, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("Failed to read symlink %s: %v", link, err)
	}
	if got != target {
		t.Errorf("Symlink %s points to %s, expected %s", link, got, target)
	}
}

// AssertUnchanged fails the test if any path is missing or no longer holds
// content.
func AssertUnchanged(t *testing.T, content string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		info, err := os.Lstat(p)
		if err != nil {
			t.Errorf("Expected %s to exist: %v", p, err)
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			t.Errorf("Expected %s to be a regular file", p)
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil || string(data) != content {
			t.Errorf("Expected %s to contain %q", p, content)
		}
	}
}
