package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"brunnhilde/internal/pipeline"
	"brunnhilde/internal/records"
	"brunnhilde/internal/report"
	"brunnhilde/internal/stats"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "summary <report-dir>",
		Short: "Print the aggregate statistics of a finished run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := filepath.Join(args[0], pipeline.DatabaseFileName)
			if _, err := os.Stat(dbPath); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("no %s in %s; is this a brunnhilde report directory?", pipeline.DatabaseFileName, args[0])
				}
				return fmt.Errorf("inspect %s: %w", dbPath, err)
			}

			store, err := records.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			collected, err := stats.Collect(cmd.Context(), store.DB())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := report.RenderTerminal(out, collected.Summary); err != nil {
				return err
			}
			if top == 0 {
				return nil
			}
			if err := report.RenderBuckets(out, report.SectionFormats, collected.Formats, top); err != nil {
				return err
			}
			return report.RenderBuckets(out, report.SectionYears, collected.Years, top)
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Rows of the format and year tables to print (0 hides them, -1 prints all)")
	return cmd
}
