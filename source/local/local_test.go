package local

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, name string, content []byte) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestList_FitsExtensionsOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "night1/exp1.fits", []byte("a"))
	writeFile(t, root, "night1/exp2.FIT", []byte("bb"))
	writeFile(t, root, "night2/exp3.fts", []byte("ccc"))
	writeFile(t, root, "night2/readme.txt", []byte("not an exposure"))
	writeFile(t, root, "index.db", []byte("not an exposure"))

	src := New(root)
	entries, err := src.List(t.Context())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %v", entries)
	}

	sizes := make(map[string]int64)
	for _, e := range entries {
		sizes[e.Path] = e.Size
	}
	if sizes["night1/exp1.fits"] != 1 {
		t.Errorf("exp1 size: got %d", sizes["night1/exp1.fits"])
	}
	if _, ok := sizes["night1/exp2.FIT"]; !ok {
		t.Error("expected case-insensitive extension match")
	}
}

func TestOpen_RelativePath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "night1/exp1.fits", []byte("payload"))

	src := New(root)
	rc, err := src.Open(t.Context(), "night1/exp1.fits")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("content: got %q", got)
	}
}
