package preflight

import (
	"brunnhilde/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Features lists the optional steps a run will perform. Tools backing a
// disabled step are reported as optional.
type Features struct {
	DiskImage bool
	HFS       bool
	VirusScan bool
	PIIScan   bool
}

// AllFeatures enables every optional step.
func AllFeatures() Features {
	return Features{DiskImage: true, HFS: true, VirusScan: true, PIIScan: true}
}

// RunAll executes the filesystem checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckOutputDirectory("Output directory", cfg.Paths.OutputDir),
		CheckOutputDirectory("Log directory", cfg.Paths.LogDir),
	}
}

// Failed returns the checks that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
