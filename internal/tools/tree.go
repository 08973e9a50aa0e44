package tools

import (
	"context"
	"fmt"
	"os"
)

// Tree writes a directory listing with sizes and dates using tree.
type Tree struct {
	runner Runner
	binary string
}

// NewTree returns a tree adapter.
func NewTree(runner Runner, binary string) *Tree {
	return &Tree{runner: runner, binary: binary}
}

// Write lists dir, sorted by modification time with human-readable sizes,
// into outPath.
func (t *Tree) Write(ctx context.Context, dir, outPath string) (err error) {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create tree output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close tree output: %w", cerr)
		}
	}()

	inv := Invocation{Binary: t.binary, Args: []string{"-tDhR", dir}, Stdout: out}
	res, err := t.runner.Run(ctx, inv)
	if err != nil {
		return err
	}
	return res.exitError(inv)
}
