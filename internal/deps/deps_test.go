package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesScriptNeedsOnlyToExist(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "unhfs.sh")
	if err := os.WriteFile(script, []byte("echo carve\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	results := CheckBinaries([]Requirement{
		{Name: "HFS Explorer", Command: script, Script: true},
		{Name: "Gone", Command: filepath.Join(dir, "gone.sh"), Script: true},
		{Name: "Dir", Command: dir, Script: true},
	})
	if !results[0].Available {
		t.Fatalf("expected non-executable script to be available: %#v", results[0])
	}
	if results[1].Available || results[2].Available {
		t.Fatalf("expected missing script and directory to be unavailable: %#v", results[1:])
	}
}

func TestMissingIgnoresOptional(t *testing.T) {
	statuses := []Status{
		{Name: "sf", Available: true},
		{Name: "clamscan", Available: false},
		{Name: "tree", Available: false, Optional: true},
	}
	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "clamscan" {
		t.Fatalf("unexpected missing set: %#v", missing)
	}
}

func TestCheckBinariesUnconfigured(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Blank", Command: "  "}})
	if results[0].Available || results[0].Detail != "command not configured" {
		t.Fatalf("unexpected status: %#v", results[0])
	}
}
