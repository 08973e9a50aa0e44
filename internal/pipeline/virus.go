package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"brunnhilde/internal/fileutil"
	"brunnhilde/internal/tools"
)

var errNoSummary = errors.New("virus scan summary missing")

// virusScan runs clamscan over the scan directory, then compares its file
// count with a walk of the same tree. Missed files and infections are put
// to the policy.
func (r *run) virusScan(ctx context.Context) error {
	clam := tools.NewClamAV(r.deps.Runner, r.deps.Tools.ClamScan)
	logPath := filepath.Join(r.logDir, VirusLogName)
	r.logger.Info("running virus scan", slog.String("dir", r.scanDir))

	result, err := clam.Scan(ctx, r.scanDir, logPath, r.deps.Clock())
	if err != nil {
		var exitErr *tools.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("virus scan: %w", err)
		}
		r.warn("clamscan reported an error", err)
	}
	if !result.Complete {
		r.warn("virus scan incomplete", errNoSummary)
	}

	found, err := fileutil.CountFiles(r.scanDir)
	if err != nil {
		return err
	}
	missing := found - result.Scanned
	if missing >= 1 {
		note := fmt.Sprintf("The virus scan missed %d file(s) in %s", missing, r.scanDir)
		if err := tools.AppendLogNote(logPath, note); err != nil {
			r.warn("could not annotate virus log", err)
		}
		r.warn(note, nil)
		if r.deps.Policy.OnCoverageShortfall(missing) == Abort {
			return fmt.Errorf("%w: virus scan missed %d file(s)", ErrAborted, missing)
		}
	} else {
		if err := tools.AppendLogNote(logPath, fmt.Sprintf("The virus scan missed 0 files in %s", r.scanDir)); err != nil {
			r.warn("could not annotate virus log", err)
		}
	}

	if result.Infected > 0 {
		r.warn(fmt.Sprintf("virus scan found %d infected file(s)", result.Infected), nil)
		if r.deps.Policy.OnInfectionFound(result.Infected) == Abort {
			return fmt.Errorf("%w: %d infected file(s) found", ErrAborted, result.Infected)
		}
		return nil
	}
	r.logger.Info("no infections found", slog.Int("scanned", result.Scanned))
	return nil
}
