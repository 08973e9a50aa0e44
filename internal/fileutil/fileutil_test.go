package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCountFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 10)
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), 0)
	writeFile(t, filepath.Join(dir, "sub", "deeper", "c.bin"), 4096)
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	n, err := CountFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 files, got %d", n)
	}
}

func TestCountFilesMissingRoot(t *testing.T) {
	if _, err := CountFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestDiskUsageCountsHardLinksOnce(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.bin")
	writeFile(t, big, 64*1024)

	before, err := DiskUsage(dir)
	if err != nil {
		t.Fatal(err)
	}
	if before < 64*1024 {
		t.Fatalf("expected at least 64KiB allocated, got %d", before)
	}

	if err := os.Link(big, filepath.Join(dir, "link.bin")); err != nil {
		t.Skipf("hard links unsupported: %v", err)
	}
	after, err := DiskUsage(dir)
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Fatalf("hard link changed usage: before %d after %d", before, after)
	}
}

func TestIsDirAndIsRegular(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	writeFile(t, file, 1)

	if !IsDir(dir) || IsDir(file) {
		t.Fatal("IsDir mismatch")
	}
	if !IsRegular(file) || IsRegular(dir) || IsRegular(filepath.Join(dir, "missing")) {
		t.Fatal("IsRegular mismatch")
	}
}

func TestRemoveAllMissingPath(t *testing.T) {
	if err := RemoveAll(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
