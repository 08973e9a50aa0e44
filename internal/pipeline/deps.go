package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"brunnhilde/internal/config"
	"brunnhilde/internal/logging"
	"brunnhilde/internal/tools"
)

// Deps supplies the collaborators a run needs.
type Deps struct {
	Runner    tools.Runner
	Tools     config.Tools
	ExtraArgs []string
	Policy    Policy
	Logger    *slog.Logger
	Clock     func() time.Time
	NewRunID  func() string
}

// NewDeps wires the production collaborators from cfg.
func NewDeps(cfg *config.Config, policy Policy, logger *slog.Logger) Deps {
	return Deps{
		Runner:    tools.ExecRunner{Logger: logging.NewComponentLogger(logger, "exec")},
		Tools:     cfg.Tools,
		ExtraArgs: cfg.SiegfriedArgs(),
		Policy:    policy,
		Logger:    logger,
	}
}

func (d Deps) withDefaults() Deps {
	if d.Runner == nil {
		d.Runner = tools.ExecRunner{}
	}
	if d.Policy == nil {
		d.Policy = AbortPolicy{}
	}
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.NewRunID == nil {
		d.NewRunID = uuid.NewString
	}
	defaults := config.Default().Tools
	if d.Tools.Siegfried == "" {
		d.Tools.Siegfried = defaults.Siegfried
	}
	if d.Tools.ClamScan == "" {
		d.Tools.ClamScan = defaults.ClamScan
	}
	if d.Tools.BulkExtractor == "" {
		d.Tools.BulkExtractor = defaults.BulkExtractor
	}
	if d.Tools.TSKRecover == "" {
		d.Tools.TSKRecover = defaults.TSKRecover
	}
	if d.Tools.UnHFS == "" {
		d.Tools.UnHFS = defaults.UnHFS
	}
	if d.Tools.Tree == "" {
		d.Tools.Tree = defaults.Tree
	}
	return d
}
