package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeReport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(outputDirEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.Siegfried = orDefault(c.Tools.Siegfried, defaultSiegfried)
	c.Tools.SiegfriedExtraArgs = strings.TrimSpace(c.Tools.SiegfriedExtraArgs)
	c.Tools.Throttle = orDefault(c.Tools.Throttle, defaultThrottle)
	c.Tools.ClamScan = orDefault(c.Tools.ClamScan, defaultClamScan)
	c.Tools.BulkExtractor = orDefault(c.Tools.BulkExtractor, defaultBulkExtractor)
	c.Tools.TSKRecover = orDefault(c.Tools.TSKRecover, defaultTSKRecover)
	c.Tools.UnHFS = orDefault(c.Tools.UnHFS, defaultUnHFS)
	c.Tools.Tree = orDefault(c.Tools.Tree, defaultTree)
}

func (c *Config) normalizeReport() {
	base := strings.TrimSpace(c.Report.RegistryBaseURL)
	if base == "" {
		base = defaultRegistryBaseURL
	}
	c.Report.RegistryBaseURL = strings.TrimRight(base, "/")
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
