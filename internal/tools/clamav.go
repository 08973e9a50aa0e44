package tools

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	clamScannedPrefix  = "Scanned files:"
	clamInfectedPrefix = "Infected files:"
)

// ClamReport holds the figures from clamscan's scan summary.
type ClamReport struct {
	Scanned  int
	Infected int
	// Complete is false when the summary lines were missing, for example
	// because clamscan stopped early.
	Complete bool
}

// ClamAV drives clamscan.
type ClamAV struct {
	runner Runner
	binary string
}

// NewClamAV returns a clamscan adapter.
func NewClamAV(runner Runner, binary string) *ClamAV {
	return &ClamAV{runner: runner, binary: binary}
}

// Scan checks dir recursively, listing infected files only, and writes
// the clamscan output followed by a scan timestamp to logPath. clamscan
// exits 1 when it finds infections, which is not treated as a failure.
func (c *ClamAV) Scan(ctx context.Context, dir, logPath string, started time.Time) (ClamReport, error) {
	log, err := os.Create(logPath)
	if err != nil {
		return ClamReport{}, fmt.Errorf("create virus log: %w", err)
	}
	defer log.Close()

	inv := Invocation{Binary: c.binary, Args: []string{"-i", "-r", dir}, Stdout: log}
	res, err := c.runner.Run(ctx, inv)
	if err != nil {
		return ClamReport{}, err
	}
	if _, err := fmt.Fprintf(log, "Date scanned: %s\n", started.Format(time.DateTime)); err != nil {
		return ClamReport{}, fmt.Errorf("write virus log: %w", err)
	}
	if err := log.Close(); err != nil {
		return ClamReport{}, fmt.Errorf("close virus log: %w", err)
	}

	report, err := ParseClamLogFile(logPath)
	if err != nil {
		return ClamReport{}, err
	}
	if res.ExitCode > 1 {
		return report, res.exitError(inv)
	}
	return report, nil
}

// ParseClamLog extracts the scanned and infected file counts from a
// clamscan log.
func ParseClamLog(r io.Reader) (ClamReport, error) {
	var (
		report            ClamReport
		scanned, infected bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, clamScannedPrefix):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, clamScannedPrefix)))
			if err != nil {
				return report, fmt.Errorf("parse %q: %w", line, err)
			}
			report.Scanned, scanned = n, true
		case strings.HasPrefix(line, clamInfectedPrefix):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, clamInfectedPrefix)))
			if err != nil {
				return report, fmt.Errorf("parse %q: %w", line, err)
			}
			report.Infected, infected = n, true
		}
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("read virus log: %w", err)
	}
	report.Complete = scanned && infected
	return report, nil
}

// ParseClamLogFile parses the clamscan log at path.
func ParseClamLogFile(path string) (ClamReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return ClamReport{}, fmt.Errorf("open virus log: %w", err)
	}
	defer f.Close()
	return ParseClamLog(f)
}

// AppendLogNote appends a line to an existing tool log.
func AppendLogNote(path, note string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if _, err := fmt.Fprintln(f, note); err != nil {
		_ = f.Close()
		return fmt.Errorf("append log: %w", err)
	}
	return f.Close()
}
