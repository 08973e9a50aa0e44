package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brunnhilde/internal/deps"
	"brunnhilde/internal/preflight"
	"brunnhilde/internal/report"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Report which external tools and directories are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDepsTable(preflight.CheckSystemDeps(cfg, preflight.AllFeatures())))

			status := newStatusPrinter(out)
			for _, r := range preflight.RunAll(cfg) {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				status.line(r.Name, kind, r.Detail)
			}
			return nil
		},
	}
}

func renderDepsTable(statuses []deps.Status) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		detail := s.Detail
		if detail == "" {
			detail = s.Description
		}
		rows = append(rows, []string{s.Name, s.Command, yesNo(s.Available), yesNo(!s.Optional), detail})
	}
	t := report.TerminalTable{
		Title:   "External tools",
		Headers: []string{"Tool", "Command", "Available", "Required", "Notes"},
	}
	return t.Render(rows)
}
