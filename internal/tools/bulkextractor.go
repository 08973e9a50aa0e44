package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// PIIFeatureFile is the bulk_extractor feature file holding personal data
// hits.
const PIIFeatureFile = "pii.txt"

// BulkExtractor drives bulk_extractor in sensitive-data mode.
type BulkExtractor struct {
	runner Runner
	binary string
}

// NewBulkExtractor returns a bulk_extractor adapter.
func NewBulkExtractor(runner Runner, binary string) *BulkExtractor {
	return &BulkExtractor{runner: runner, binary: binary}
}

// Scan searches dir recursively, writing feature files into outDir and the
// tool's console output to logPath. It returns the PII feature file path.
func (b *BulkExtractor) Scan(ctx context.Context, dir, outDir, logPath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outDir), 0o755); err != nil {
		return "", fmt.Errorf("create bulk_extractor parent: %w", err)
	}
	log, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("create bulk_extractor log: %w", err)
	}
	defer log.Close()

	inv := Invocation{
		Binary: b.binary,
		Args:   []string{"-S", "ssn_mode=2", "-o", outDir, "-R", dir},
		Stdout: log,
	}
	res, err := b.runner.Run(ctx, inv)
	if err != nil {
		return "", err
	}
	if err := res.exitError(inv); err != nil {
		return "", err
	}
	return filepath.Join(outDir, PIIFeatureFile), nil
}
