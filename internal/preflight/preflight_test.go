package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brunnhilde/internal/config"
	"brunnhilde/internal/deps"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputDirectory_NotYetCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "nested")
	result := CheckOutputDirectory("Output directory", path)
	if !result.Passed {
		t.Fatalf("expected pass when parent is writable, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "free") {
		t.Fatalf("expected free space in detail, got %q", result.Detail)
	}
}

func TestCheckOutputDirectory_UnderFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckOutputDirectory("Output directory", filepath.Join(f, "reports")); result.Passed {
		t.Fatal("expected failure when the closest existing parent is a file")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()

	results := RunAll(&cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %#v", failed)
	}
}

func TestCheckSystemDeps_FeatureGating(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Siegfried = "clearly-not-present-sf"
	cfg.Tools.ClamScan = "clearly-not-present-clamscan"
	cfg.Tools.TSKRecover = "clearly-not-present-tsk"
	cfg.Tools.BulkExtractor = "clearly-not-present-be"
	cfg.Tools.UnHFS = filepath.Join(t.TempDir(), "unhfs.sh")

	missing := deps.Missing(CheckSystemDeps(&cfg, Features{VirusScan: true}))
	names := make([]string, 0, len(missing))
	for _, m := range missing {
		names = append(names, m.Name)
	}
	if strings.Join(names, ",") != "Siegfried,ClamAV" {
		t.Fatalf("unexpected missing set: %v", names)
	}

	missing = deps.Missing(CheckSystemDeps(&cfg, Features{DiskImage: true, HFS: true}))
	names = names[:0]
	for _, m := range missing {
		names = append(names, m.Name)
	}
	if strings.Join(names, ",") != "Siegfried,HFS Explorer" {
		t.Fatalf("unexpected missing set for hfs image: %v", names)
	}
}
