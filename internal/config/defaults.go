package config

import "time"

const (
	defaultOutputDir       = "."
	defaultLogDir          = "~/.local/share/brunnhilde/logs"
	defaultSiegfried       = "sf"
	defaultClamScan        = "clamscan"
	defaultBulkExtractor   = "bulk_extractor"
	defaultTSKRecover      = "tsk_recover"
	defaultUnHFS           = "/usr/share/hfsexplorer/bin/unhfs.sh"
	defaultTree            = "tree"
	defaultThrottle        = "10ms"
	defaultThrottleDelay   = 10 * time.Millisecond
	defaultRegistryBaseURL = "http://apps.nationalarchives.gov.uk/PRONOM"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	outputDirEnv           = "BRUNNHILDE_OUTPUT_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Tools: Tools{
			Siegfried:     defaultSiegfried,
			Throttle:      defaultThrottle,
			ClamScan:      defaultClamScan,
			BulkExtractor: defaultBulkExtractor,
			TSKRecover:    defaultTSKRecover,
			UnHFS:         defaultUnHFS,
			Tree:          defaultTree,
		},
		Report: Report{
			RegistryBaseURL: defaultRegistryBaseURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
