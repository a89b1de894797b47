package main

import (
	"github.com/krkonrad/Calculation-data/internal/config"
	"github.com/krkonrad/Calculation-data/internal/report"
	"github.com/krkonrad/Calculation-data/internal/tui"
	"github.com/spf13/cobra"
)

func pickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Browse locations interactively and show the report for the one you pick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ds, err := openDataset(cfg)
			if err != nil {
				return err
			}

			opts := report.DefaultOptions()
			opts.WholeLabel = cfg.WholeLabel

			return tui.Run(cmd.Context(), tui.Config{Data: ds, Report: opts})
		},
	}
}
