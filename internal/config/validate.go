package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/shlex"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateTools() error {
	d, err := time.ParseDuration(c.Tools.Throttle)
	if err != nil {
		return fmt.Errorf("tools.throttle: %w", err)
	}
	if d <= 0 {
		return errors.New("tools.throttle must be positive")
	}
	if _, err := shlex.Split(c.Tools.SiegfriedExtraArgs); err != nil {
		return fmt.Errorf("tools.siegfried_extra_args: %w", err)
	}
	return nil
}

func (c *Config) validateReport() error {
	parsed, err := url.Parse(c.Report.RegistryBaseURL)
	if err != nil {
		return fmt.Errorf("report.registry_base_url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("report.registry_base_url must be an absolute URL, got %q", c.Report.RegistryBaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
