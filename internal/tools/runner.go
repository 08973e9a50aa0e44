package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Invocation describes one child process.
type Invocation struct {
	Binary string
	Args   []string
	Dir    string
	// Stdout receives standard output when set. Otherwise it is captured
	// into Result.Stdout.
	Stdout io.Writer
}

// String renders the invocation as a shell-style command line.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, shellQuote(inv.Binary))
	for _, arg := range inv.Args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r Result) exitError(inv Invocation) error {
	if r.ExitCode == 0 {
		return nil
	}
	return &ExitError{Binary: inv.Binary, Code: r.ExitCode, Stderr: strings.TrimSpace(r.Stderr)}
}

// Runner executes child processes. A non-zero exit is reported through
// Result.ExitCode; the error is reserved for processes that could not be
// started or were cancelled.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExitError reports a process that exited with a non-zero status.
type ExitError struct {
	Binary string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Binary, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Binary, e.Code, e.Stderr)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct {
	Logger *slog.Logger
}

// Run starts inv and waits for it to finish.
func (r ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	if r.Logger != nil {
		r.Logger.Debug("running command", slog.String("command", inv.String()))
	}

	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...) //nolint:gosec
	cmd.Dir = inv.Dir
	var stdout, stderr bytes.Buffer
	if inv.Stdout != nil {
		cmd.Stdout = inv.Stdout
	} else {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("run %s: %w", inv.Binary, err)
	}
	return res, nil
}

const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./=:,+@%"

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.Trim(s, shellSafe) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
