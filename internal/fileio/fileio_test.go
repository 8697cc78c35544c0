package fileio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := WriteLines(path, []string{"one", "two", ""}); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "one\ntwo\n\n" {
		t.Errorf("got %q", got)
	}
}

func TestWriteLinesReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("old content\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := WriteLines(path, []string{"new"}); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new\n" {
		t.Errorf("got %q", got)
	}
}

func TestWriteLinesCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")

	if err := WriteLines(path, []string{"data"}); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

// No temp files are left behind after a successful write.
func TestWriteLinesNoTempResidue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := WriteLines(path, []string{"data"}); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("unexpected files in directory: %v", entries)
	}
}
