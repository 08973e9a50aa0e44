package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// ScanOptions tunes a siegfried scan.
type ScanOptions struct {
	// Archives makes siegfried descend into zip, tar, gzip, warc and arc files.
	Archives bool
	// Throttle pauses between files. Zero disables it.
	Throttle time.Duration
}

// Siegfried drives the sf format identification tool.
type Siegfried struct {
	runner Runner
	binary string
	extra  []string
}

// NewSiegfried returns a siegfried adapter. extra is appended before the
// source path on every scan.
func NewSiegfried(runner Runner, binary string, extra []string) *Siegfried {
	return &Siegfried{runner: runner, binary: binary, extra: append([]string(nil), extra...)}
}

// Version returns the tool and signature file description reported by
// sf -version, one line per entry joined with "; ".
func (s *Siegfried) Version(ctx context.Context) (string, error) {
	inv := Invocation{Binary: s.binary, Args: []string{"-version"}}
	res, err := s.runner.Run(ctx, inv)
	if err != nil {
		return "", err
	}
	if err := res.exitError(inv); err != nil {
		return "", err
	}
	var lines []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", errors.New("sf -version produced no output")
	}
	return strings.Join(lines, "; "), nil
}

// Invocation returns the scan command for source.
func (s *Siegfried) Invocation(source string, opts ScanOptions) Invocation {
	var args []string
	if opts.Archives {
		args = append(args, "-z")
	}
	args = append(args, "-csv")
	if opts.Throttle > 0 {
		args = append(args, "-throttle", opts.Throttle.String())
	}
	args = append(args, "-hash", "md5")
	args = append(args, s.extra...)
	args = append(args, source)
	return Invocation{Binary: s.binary, Args: args}
}

// CommandLine renders the scan as it would be typed in a shell, output
// redirection included.
func (s *Siegfried) CommandLine(source, csvPath string, opts ScanOptions) string {
	return s.Invocation(source, opts).String() + " > " + shellQuote(csvPath)
}

// Scan identifies every file under source and writes siegfried's CSV
// output to csvPath.
func (s *Siegfried) Scan(ctx context.Context, source, csvPath string, opts ScanOptions) (err error) {
	out, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create scan output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close scan output: %w", cerr)
		}
	}()

	inv := s.Invocation(source, opts)
	inv.Stdout = out
	res, err := s.runner.Run(ctx, inv)
	if err != nil {
		return err
	}
	return res.exitError(inv)
}
