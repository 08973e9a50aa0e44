package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"brunnhilde/internal/fileutil"
	"brunnhilde/internal/logging"
	"brunnhilde/internal/pronom"
	"brunnhilde/internal/records"
	"brunnhilde/internal/report"
	"brunnhilde/internal/stats"
	"brunnhilde/internal/tools"
)

// Artifact names inside the report directory.
const (
	CSVDirName       = "csv_reports"
	LogDirName       = "logs"
	CarveDirName     = "carved_files"
	BulkDirName      = "bulk_extractor"
	ScanFileName     = "siegfried.csv"
	DatabaseFileName = "siegfried.sqlite"
	TempHTMLName     = "temp.html"
	TreeFileName     = "tree.txt"
	VirusLogName     = "viruscheck-log.txt"
	BulkLogName      = "bulkext-log.txt"
	lockFileName     = ".lock"
)

// Outcome describes a finished run.
type Outcome struct {
	RunID        string
	Source       string
	ReportDir    string
	HTMLPath     string
	CSVDir       string
	DatabasePath string
	Summary      *stats.Summary
	TotalBytes   int64
	Loaded       records.LoadResult
	LinkedIDs    int

	// Warnings lists problems that did not stop the run.
	Warnings []string
}

type run struct {
	opts   Options
	deps   Deps
	logger *slog.Logger

	source    string
	scanDir   string
	reportDir string
	csvDir    string
	logDir    string
	started   time.Time
	outcome   *Outcome
}

// Run characterizes opts.Source and writes every report. When it fails
// after creating the report directory, the directory is removed again.
// When it fails while rerunning an existing identifier, the earlier run's
// artifacts are restored.
func Run(ctx context.Context, opts Options, d Deps) (*Outcome, error) {
	d = d.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	source, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if opts.DiskImage && !fileutil.IsRegular(source) {
		return nil, fmt.Errorf("%w: %s is not a disk image file", ErrInvalidSource, source)
	}
	if !opts.DiskImage && !fileutil.IsDir(source) {
		return nil, fmt.Errorf("%w: %s is not a directory (use --diskimage for disk images)", ErrInvalidSource, source)
	}

	root := opts.OutputRoot
	if root == "" {
		root = "."
	}
	reportDir, err := filepath.Abs(filepath.Join(root, opts.Identifier))
	if err != nil {
		return nil, fmt.Errorf("resolve report directory: %w", err)
	}
	created := !fileutil.IsDir(reportDir)
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	lock := flock.New(filepath.Join(reportDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		if created {
			_ = fileutil.RemoveAll(reportDir)
		}
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunLocked, reportDir)
	}

	runID := d.NewRunID()
	ctx = logging.WithRunID(ctx, runID)
	r := &run{
		opts:      opts,
		deps:      d,
		logger:    logging.WithContext(ctx, logging.NewComponentLogger(d.Logger, "pipeline")).With(slog.String(logging.FieldIdentifier, opts.Identifier)),
		source:    source,
		scanDir:   source,
		reportDir: reportDir,
		csvDir:    filepath.Join(reportDir, CSVDirName),
		logDir:    filepath.Join(reportDir, LogDirName),
		started:   d.Clock(),
		outcome: &Outcome{
			RunID:        runID,
			Source:       source,
			ReportDir:    reportDir,
			CSVDir:       filepath.Join(reportDir, CSVDirName),
			DatabasePath: filepath.Join(reportDir, DatabaseFileName),
			HTMLPath:     filepath.Join(reportDir, opts.Identifier+".html"),
		},
	}

	names := artifactNames(opts.Identifier)
	var prev *previousRun
	var runErr error
	if !created {
		prev, runErr = setAsidePrevious(reportDir, runID, names)
	}
	if runErr == nil {
		runErr = r.execute(ctx)
	}
	if prev != nil {
		if runErr != nil {
			if err := prev.restore(names); err != nil {
				r.logger.Warn("failed to restore previous report", slog.String("dir", prev.dir), logging.Error(err))
			}
		} else if err := prev.discard(); err != nil {
			r.logger.Warn("failed to remove previous report", slog.String("dir", prev.dir), logging.Error(err))
		}
	}

	if err := lock.Unlock(); err != nil {
		r.logger.Warn("failed to release run lock", logging.Error(err))
	}
	_ = os.Remove(lock.Path())

	if runErr != nil {
		if created {
			if err := fileutil.RemoveAll(reportDir); err != nil {
				r.logger.Warn("failed to remove partial report directory", slog.String("dir", reportDir), logging.Error(err))
			}
		}
		r.logger.Error("run failed", logging.Error(runErr))
		return nil, runErr
	}
	r.logger.Info("run complete",
		slog.String("report", r.outcome.HTMLPath),
		slog.Int("total_files", r.outcome.Summary.TotalFiles),
		slog.Int("warnings", len(r.outcome.Warnings)),
	)
	return r.outcome, nil
}

func (r *run) execute(ctx context.Context) error {
	for _, dir := range []string{r.csvDir, r.logDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Base(dir), err)
		}
	}
	r.logger.Info("run started", slog.String("source", r.source), slog.Bool("disk_image", r.opts.DiskImage))

	if r.opts.DiskImage {
		if err := r.carve(ctx); err != nil {
			return err
		}
	}
	if !r.opts.SkipVirusScan {
		if err := r.virusScan(ctx); err != nil {
			return err
		}
	}

	sf := tools.NewSiegfried(r.deps.Runner, r.deps.Tools.Siegfried, r.deps.ExtraArgs)
	scanOpts := tools.ScanOptions{Archives: r.opts.ScanArchives, Throttle: r.opts.Throttle}
	scanPath := filepath.Join(r.reportDir, ScanFileName)
	r.logger.Info("running siegfried", slog.String("dir", r.scanDir))
	if err := sf.Scan(ctx, r.scanDir, scanPath, scanOpts); err != nil {
		return fmt.Errorf("siegfried scan: %w", err)
	}

	collected, err := r.aggregate(ctx, scanPath)
	if err != nil {
		return err
	}

	tables := report.Tables(collected)
	if err := report.WriteCSV(r.csvDir, tables); err != nil {
		return err
	}
	if r.opts.PIIScan {
		tables = append(tables, report.PIITable(r.piiScan(ctx)))
	}

	version, err := sf.Version(ctx)
	if err != nil {
		r.warn("could not read siegfried version", err)
		version = "unknown"
	}
	prov := report.Provenance{
		Source:            r.source,
		Identifier:        r.opts.Identifier,
		RunID:             r.outcome.RunID,
		Started:           r.started,
		BrunnhildeVersion: r.opts.Version,
		SiegfriedVersion:  version,
		Command:           sf.CommandLine(r.scanDir, scanPath, scanOpts),
	}
	tmpPath := filepath.Join(r.reportDir, TempHTMLName)
	if err := writeHTML(tmpPath, prov, report.NewSummaryView(collected.Summary, r.outcome.TotalBytes), tables, r.opts.PIIScan); err != nil {
		return err
	}
	linked, err := pronom.RewriteFile(tmpPath, r.outcome.HTMLPath, r.opts.RegistryBase)
	if err != nil {
		return fmt.Errorf("link format identifiers: %w", err)
	}
	r.outcome.LinkedIDs = linked

	tree := tools.NewTree(r.deps.Runner, r.deps.Tools.Tree)
	if err := tree.Write(ctx, r.scanDir, filepath.Join(r.reportDir, TreeFileName)); err != nil {
		r.warn("tree listing failed", err)
	}

	if r.opts.DiskImage && r.opts.RemoveCarved {
		if err := fileutil.RemoveAll(r.scanDir); err != nil {
			r.warn("could not remove carved files", err)
		}
	}
	return nil
}

func (r *run) carve(ctx context.Context) error {
	dest := filepath.Join(r.reportDir, CarveDirName)
	carver := tools.NewCarver(r.deps.Runner, r.opts.HFS, r.deps.Tools.TSKRecover, r.deps.Tools.UnHFS)
	r.logger.Info("carving files from disk image", slog.String("carver", carver.Name()), slog.String("image", r.source))
	if err := carver.Carve(ctx, r.source, dest); err != nil {
		return fmt.Errorf("%w: %w", ErrCarveFailed, err)
	}
	r.scanDir = dest
	return nil
}

func (r *run) aggregate(ctx context.Context, scanPath string) (*stats.Report, error) {
	store, err := records.Open(r.outcome.DatabasePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	loaded, err := store.LoadFile(ctx, scanPath)
	if err != nil {
		return nil, fmt.Errorf("load scan results: %w", err)
	}
	r.outcome.Loaded = loaded
	if loaded.Skipped > 0 {
		r.warn(fmt.Sprintf("skipped %d malformed scan rows", loaded.Skipped), nil)
	}

	collected, err := stats.Collect(ctx, store.DB())
	if err != nil {
		return nil, fmt.Errorf("aggregate scan results: %w", err)
	}
	if err := collected.Summary.Check(); err != nil {
		r.warn("file accounting does not balance", err)
	}
	if n := len(collected.Summary.UnparsedDates); n > 0 {
		r.warn(fmt.Sprintf("%d modified dates could not be parsed", n), nil)
	}
	r.outcome.Summary = collected.Summary

	size, err := fileutil.DiskUsage(r.scanDir)
	if err != nil {
		r.warn("could not measure source size", err)
		size = -1
	}
	r.outcome.TotalBytes = size
	return collected, nil
}

func (r *run) piiScan(ctx context.Context) [][]string {
	be := tools.NewBulkExtractor(r.deps.Runner, r.deps.Tools.BulkExtractor)
	outDir := filepath.Join(r.reportDir, BulkDirName)
	r.logger.Info("running bulk_extractor", slog.String("dir", r.scanDir))
	piiPath, err := be.Scan(ctx, r.scanDir, outDir, filepath.Join(r.logDir, BulkLogName))
	if err != nil {
		r.warn("bulk_extractor failed", err)
		piiPath = filepath.Join(outDir, tools.PIIFeatureFile)
	}
	rows, err := report.ParsePIIFile(piiPath)
	if err != nil {
		r.warn("could not read PII results", err)
		return [][]string{}
	}
	return rows
}

func (r *run) warn(msg string, err error) {
	text := msg
	if err != nil {
		text = fmt.Sprintf("%s: %v", msg, err)
		r.logger.Warn(msg, logging.Error(err))
	} else {
		r.logger.Warn(msg)
	}
	r.outcome.Warnings = append(r.outcome.Warnings, text)
}

func writeHTML(path string, prov report.Provenance, summary report.SummaryView, tables []report.Table, withPII bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report document: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close report document: %w", cerr)
		}
	}()

	doc := report.NewDocument(f, report.Sections(withPII))
	if err := doc.Open(prov.Identifier); err != nil {
		return err
	}
	if err := doc.WriteProvenance(prov); err != nil {
		return err
	}
	if err := doc.WriteSummary(summary); err != nil {
		return err
	}
	for _, t := range tables {
		if err := doc.WriteSection(t); err != nil {
			return err
		}
	}
	return doc.Close()
}
