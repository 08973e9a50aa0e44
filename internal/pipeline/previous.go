package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"brunnhilde/internal/fileutil"
)

// artifactNames lists every entry a run may write into its report
// directory, apart from the lock file.
func artifactNames(identifier string) []string {
	return []string{
		identifier + ".html",
		TempHTMLName,
		ScanFileName,
		DatabaseFileName,
		TreeFileName,
		CSVDirName,
		LogDirName,
		CarveDirName,
		BulkDirName,
	}
}

// previousRun holds an earlier run's artifacts while a rerun of the same
// identifier writes into the report directory. A failed rerun puts them
// back; a successful one discards them.
type previousRun struct {
	reportDir string
	dir       string
	moved     []string
}

// setAsidePrevious moves the named artifacts into a hidden directory. On
// error nothing is left moved.
func setAsidePrevious(reportDir, runID string, names []string) (*previousRun, error) {
	p := &previousRun{reportDir: reportDir, dir: filepath.Join(reportDir, ".previous-"+runID)}
	for _, name := range names {
		src := filepath.Join(reportDir, name)
		if _, err := os.Lstat(src); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Join(fmt.Errorf("inspect previous %s: %w", name, err), p.putBack())
		}
		if err := os.MkdirAll(p.dir, 0o755); err != nil {
			return nil, errors.Join(fmt.Errorf("create %s: %w", filepath.Base(p.dir), err), p.putBack())
		}
		if err := os.Rename(src, filepath.Join(p.dir, name)); err != nil {
			return nil, errors.Join(fmt.Errorf("set aside previous %s: %w", name, err), p.putBack())
		}
		p.moved = append(p.moved, name)
	}
	return p, nil
}

// restore removes this run's artifacts and returns the previous ones to
// the report directory. The hidden directory survives if anything fails.
func (p *previousRun) restore(names []string) error {
	var errs []error
	for _, name := range names {
		if err := fileutil.RemoveAll(filepath.Join(p.reportDir, name)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return p.putBack()
}

func (p *previousRun) putBack() error {
	var errs []error
	for _, name := range p.moved {
		if err := os.Rename(filepath.Join(p.dir, name), filepath.Join(p.reportDir, name)); err != nil {
			errs = append(errs, fmt.Errorf("restore previous %s: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	p.moved = nil
	return fileutil.RemoveAll(p.dir)
}

func (p *previousRun) discard() error {
	return fileutil.RemoveAll(p.dir)
}
