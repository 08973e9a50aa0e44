package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"brunnhilde/internal/config"
	"brunnhilde/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckOutputDirectory verifies that path, or the closest existing parent
// it will be created under, is writable and reports the free space there.
func CheckOutputDirectory(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	target := path
	for {
		if _, err := os.Stat(target); err == nil {
			break
		}
		parent := filepath.Dir(target)
		if parent == target {
			break
		}
		target = parent
	}

	result := CheckDirectoryAccess(name, target)
	if !result.Passed {
		return result
	}
	var fs unix.Statfs_t
	if err := unix.Statfs(target, &fs); err == nil {
		free := uint64(fs.Bavail) * uint64(fs.Bsize)
		result.Detail = fmt.Sprintf("%s (read/write ok, %s free)", path, humanize.Bytes(free))
	}
	return result
}

// CheckSystemDeps evaluates the external tools for the requested features.
// The run command and the deps command share this list.
func CheckSystemDeps(cfg *config.Config, f Features) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "Siegfried",
			Command:     cfg.Tools.Siegfried,
			Description: "Required for format identification",
		},
		{
			Name:        "ClamAV",
			Command:     cfg.Tools.ClamScan,
			Description: "Virus scan (skipped with --noclam)",
			Optional:    !f.VirusScan,
		},
		{
			Name:        "bulk_extractor",
			Command:     cfg.Tools.BulkExtractor,
			Description: "PII scan (--bulkextractor)",
			Optional:    !f.PIIScan,
		},
		{
			Name:        "tsk_recover",
			Command:     cfg.Tools.TSKRecover,
			Description: "Carves files from disk images (--diskimage)",
			Optional:    !f.DiskImage || f.HFS,
		},
		{
			Name:        "HFS Explorer",
			Command:     cfg.Tools.UnHFS,
			Description: "Carves files from HFS disk images (--hfs)",
			Optional:    !f.DiskImage || !f.HFS,
			Script:      true,
		},
		{
			Name:        "tree",
			Command:     cfg.Tools.Tree,
			Description: "Writes tree.txt directory listing",
			Optional:    true,
		},
	}
	if f.DiskImage && f.HFS {
		requirements = append(requirements, deps.Requirement{
			Name:        "bash",
			Command:     "bash",
			Description: "Runs the HFS Explorer script",
		})
	}
	return deps.CheckBinaries(requirements)
}
