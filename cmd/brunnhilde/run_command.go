package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"brunnhilde/internal/deps"
	"brunnhilde/internal/pipeline"
	"brunnhilde/internal/preflight"
	"brunnhilde/internal/report"
)

type runFlags struct {
	diskImage     bool
	hfs           bool
	scanArchives  bool
	throttle      bool
	noClam        bool
	bulkExtractor bool
	removeFiles   bool
	output        string
	assumeYes     bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <source> <identifier>",
		Short: "Characterize a directory or disk image",
		Long: "Scan a directory (or the files carved from a disk image) with siegfried and\n" +
			"write HTML, CSV, and SQLite reports to <output>/<identifier>.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharacterization(cmd, ctx, flags, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.diskImage, "diskimage", "d", false, "Source is a disk image; carve files before scanning")
	f.BoolVar(&flags.hfs, "hfs", false, "Disk image is HFS formatted (requires --diskimage)")
	f.BoolVarP(&flags.scanArchives, "scanarchives", "z", false, "Scan inside archive files")
	f.BoolVarP(&flags.throttle, "throttle", "t", false, "Pause between files using the configured throttle delay")
	f.BoolVarP(&flags.noClam, "noclam", "n", false, "Skip the ClamAV virus scan")
	f.BoolVarP(&flags.bulkExtractor, "bulkextractor", "b", false, "Scan for PII with bulk_extractor")
	f.BoolVarP(&flags.removeFiles, "removefiles", "r", false, "Delete carved files after the run (requires --diskimage)")
	f.StringVarP(&flags.output, "output", "o", "", "Directory reports are written under (defaults to paths.output_dir)")
	f.BoolVarP(&flags.assumeYes, "yes", "y", false, "Continue past virus scan warnings without asking")
	return cmd
}

func runCharacterization(cmd *cobra.Command, ctx *commandContext, flags runFlags, source, identifier string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	opts := pipeline.Options{
		Source:        source,
		Identifier:    identifier,
		OutputRoot:    cfg.Paths.OutputDir,
		DiskImage:     flags.diskImage,
		HFS:           flags.hfs,
		ScanArchives:  flags.scanArchives,
		SkipVirusScan: flags.noClam,
		PIIScan:       flags.bulkExtractor,
		RemoveCarved:  flags.removeFiles,
		RegistryBase:  cfg.Report.RegistryBaseURL,
		Version:       version,
	}
	if strings.TrimSpace(flags.output) != "" {
		opts.OutputRoot = flags.output
	}
	if flags.throttle {
		opts.Throttle = cfg.ThrottleDelay()
	}

	features := preflight.Features{
		DiskImage: flags.diskImage,
		HFS:       flags.hfs,
		VirusScan: !flags.noClam,
		PIIScan:   flags.bulkExtractor,
	}
	if missing := deps.Missing(preflight.CheckSystemDeps(cfg, features)); len(missing) > 0 {
		status := newStatusPrinter(cmd.ErrOrStderr())
		for _, m := range missing {
			status.line(m.Name, statusError, m.Detail)
		}
		return fmt.Errorf("%d required tool(s) missing; run `brunnhilde deps` for details", len(missing))
	}
	if failed := preflight.Failed([]preflight.Result{preflight.CheckOutputDirectory("Output directory", opts.OutputRoot)}); len(failed) > 0 {
		return fmt.Errorf("%s: %s", failed[0].Name, failed[0].Detail)
	}

	policy := choosePolicy(flags.assumeYes, cmd.InOrStdin(), out)
	outcome, err := pipeline.Run(cmd.Context(), opts, pipeline.NewDeps(cfg, policy, logger))
	if err != nil {
		if errors.Is(err, pipeline.ErrAborted) {
			return fmt.Errorf("%w (rerun with --yes to continue past virus scan warnings)", err)
		}
		return err
	}
	return printOutcome(out, outcome)
}

func printOutcome(out io.Writer, o *pipeline.Outcome) error {
	status := newStatusPrinter(out)
	status.header("Brunnhilde run complete")
	status.line("Run ID", statusInfo, o.RunID)
	status.line("HTML report", statusOK, o.HTMLPath)
	status.line("CSV reports", statusOK, o.CSVDir)
	status.line("Database", statusOK, o.DatabasePath)
	if o.TotalBytes >= 0 {
		status.line("Total size", statusInfo, humanize.Bytes(uint64(o.TotalBytes)))
	}
	if o.Loaded.Skipped > 0 {
		status.line("Skipped rows", statusWarn, fmt.Sprintf("%d malformed scan rows", o.Loaded.Skipped))
	}
	for _, w := range o.Warnings {
		status.line("Warning", statusWarn, w)
	}
	fmt.Fprintln(out)
	return report.RenderTerminal(out, o.Summary)
}
