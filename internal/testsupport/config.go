package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brunnhilde/internal/config"
)

// ConfigOption customizes the configuration built by NewConfig.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	stubs   map[string]string
}

// DefaultTools are the executables stubbed when WithStubbedBinaries is
// called without names.
var DefaultTools = []string{"sf", "clamscan", "bulk_extractor", "tsk_recover", "tree"}

const noopScript = "#!/bin/sh\nexit 0\n"

// NewConfig returns the default config with output and log directories
// inside a fresh temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "reports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	b := &configBuilder{t: t, baseDir: base, cfg: &cfg, stubs: map[string]string{}}
	for _, opt := range opts {
		opt(b)
	}
	b.installStubs()
	return b.cfg
}

// WithStubbedBinaries puts executables that exit 0 on PATH for the given
// names, or for DefaultTools when none are given.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = DefaultTools
		}
		for _, name := range names {
			if _, ok := b.stubs[name]; !ok {
				b.stubs[name] = noopScript
			}
		}
	}
}

// WithStubScript puts an executable named name on PATH whose body is the
// given shell script. A missing shebang line is added.
func WithStubScript(name, script string) ConfigOption {
	return func(b *configBuilder) {
		if !strings.HasPrefix(script, "#!") {
			script = "#!/bin/sh\n" + script
		}
		b.stubs[name] = script
	}
}

func (b *configBuilder) installStubs() {
	if len(b.stubs) == 0 {
		return
	}
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	for name, script := range b.stubs {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub %s: %v", name, err)
		}
	}
	b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// BaseDir returns the temp directory backing a config from NewConfig.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
