package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrInvalidSource reports a source that is missing or of the wrong kind
	// for the selected mode.
	ErrInvalidSource = errors.New("invalid source")
	// ErrCarveFailed reports that files could not be exported from a disk
	// image.
	ErrCarveFailed = errors.New("carving disk image failed")
	// ErrAborted reports that the policy chose to stop the run.
	ErrAborted = errors.New("run aborted")
	// ErrRunLocked reports another run writing to the same report directory.
	ErrRunLocked = errors.New("report directory is in use by another run")
)

// Options is the complete configuration of a single run. It is built once
// and passed by value.
type Options struct {
	Source        string
	Identifier    string
	OutputRoot    string
	DiskImage     bool
	HFS           bool
	ScanArchives  bool
	Throttle      time.Duration
	SkipVirusScan bool
	PIIScan       bool
	RemoveCarved  bool
	RegistryBase  string
	Version       string
}

func (o Options) validate() error {
	if strings.TrimSpace(o.Source) == "" {
		return fmt.Errorf("%w: source path required", ErrInvalidSource)
	}
	id := strings.TrimSpace(o.Identifier)
	if id == "" || id == "." || id == ".." || strings.ContainsRune(id, filepath.Separator) {
		return fmt.Errorf("identifier %q must be a plain name", o.Identifier)
	}
	if o.HFS && !o.DiskImage {
		return errors.New("--hfs requires --diskimage")
	}
	if o.RemoveCarved && !o.DiskImage {
		return errors.New("--removefiles requires --diskimage")
	}
	if o.Throttle < 0 {
		return fmt.Errorf("throttle must not be negative, got %s", o.Throttle)
	}
	return nil
}

// Decision is a policy's answer to a recoverable problem.
type Decision int

const (
	Abort Decision = iota
	Continue
)

func (d Decision) String() string {
	if d == Continue {
		return "continue"
	}
	return "abort"
}

// Policy decides whether a run continues after a recoverable problem.
type Policy interface {
	// OnCoverageShortfall is called when the virus scan checked fewer files
	// than the source holds.
	OnCoverageShortfall(missing int) Decision
	// OnInfectionFound is called when the virus scan reported infected files.
	OnInfectionFound(infected int) Decision
}

// AbortPolicy stops on every recoverable problem. It is the default for
// unattended runs.
type AbortPolicy struct{}

func (AbortPolicy) OnCoverageShortfall(int) Decision { return Abort }
func (AbortPolicy) OnInfectionFound(int) Decision    { return Abort }

// ContinuePolicy records problems and carries on.
type ContinuePolicy struct{}

func (ContinuePolicy) OnCoverageShortfall(int) Decision { return Continue }
func (ContinuePolicy) OnInfectionFound(int) Decision    { return Continue }
