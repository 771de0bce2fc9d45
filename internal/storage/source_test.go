package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceFetchList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arts.txt")
	content := "https://twitter.com/artist/status/1\nhttps://safebooru.org/index.php?id=2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to seed arts file: %v", err)
	}

	source := NewFileSource(path)
	got, err := source.FetchList(context.Background())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "missing.txt"))
	_, err := source.FetchList(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file, got none")
	}
}
