package tools

import (
	"context"
	"fmt"
	"os"
)

// Carver exports the files held in a disk image into a directory.
type Carver interface {
	Name() string
	Carve(ctx context.Context, image, dest string) error
}

// TSKRecover carves with The Sleuth Kit's tsk_recover.
type TSKRecover struct {
	runner Runner
	binary string
}

// NewTSKRecover returns a tsk_recover carver.
func NewTSKRecover(runner Runner, binary string) *TSKRecover {
	return &TSKRecover{runner: runner, binary: binary}
}

func (t *TSKRecover) Name() string { return "tsk_recover" }

// Carve recovers allocated and unallocated files from image into dest.
func (t *TSKRecover) Carve(ctx context.Context, image, dest string) error {
	return carve(ctx, t.runner, Invocation{Binary: t.binary, Args: []string{"-a", image, dest}}, dest)
}

// HFSExplorer carves HFS images with HFS Explorer's unhfs script.
type HFSExplorer struct {
	runner Runner
	script string
}

// NewHFSExplorer returns an HFS Explorer carver using the unhfs script at
// script.
func NewHFSExplorer(runner Runner, script string) *HFSExplorer {
	return &HFSExplorer{runner: runner, script: script}
}

func (h *HFSExplorer) Name() string { return "hfsexplorer" }

// Carve extracts every file from the HFS image into dest.
func (h *HFSExplorer) Carve(ctx context.Context, image, dest string) error {
	return carve(ctx, h.runner, Invocation{Binary: "bash", Args: []string{h.script, "-o", dest, image}}, dest)
}

// NewCarver picks the carver for the image type.
func NewCarver(runner Runner, hfs bool, tskBinary, unhfsScript string) Carver {
	if hfs {
		return NewHFSExplorer(runner, unhfsScript)
	}
	return NewTSKRecover(runner, tskBinary)
}

func carve(ctx context.Context, runner Runner, inv Invocation, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create carve destination: %w", err)
	}
	res, err := runner.Run(ctx, inv)
	if err != nil {
		return err
	}
	return res.exitError(inv)
}
