// Package testing holds filesystem fixtures shared by package tests.
package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates files under root from a map of slash-separated relative
// paths to contents and returns root.
func WriteTree(t *testing.T, root string, files map[string]string) string {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return root
}

// ReadFile returns the content of a slash-separated path under root.
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether a slash-separated path under root exists.
func Exists(t *testing.T, root, rel string) bool {
	t.Helper()

	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}
