package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retortlabs/retort/internal/adapters/fs"
)

func TestComputeFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retort.yaml")
	if err := os.WriteFile(path, []byte("envlist: [py27]\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	h := fs.NewHasher()

	hash1, err := h.ComputeFileHash(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hash1) != 16 {
		t.Errorf("expected 16-char hex digest, got %q", hash1)
	}

	// Same content, same digest
	hash2, err := h.ComputeFileHash(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash1 != hash2 {
		t.Errorf("expected stable digest, got %q and %q", hash1, hash2)
	}

	// Changed content, changed digest
	if err := os.WriteFile(path, []byte("envlist: [py36]\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	hash3, err := h.ComputeFileHash(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash3 == hash1 {
		t.Error("expected digest to change with content")
	}
}

func TestComputeFileHash_Missing(t *testing.T) {
	h := fs.NewHasher()
	if _, err := h.ComputeFileHash(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing file")
	}
}
