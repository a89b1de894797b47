package main

import (
	"fmt"

	"github.com/krkonrad/Calculation-data/internal/config"
	"github.com/krkonrad/Calculation-data/internal/report"
	"github.com/spf13/cobra"
)

func locationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the locations found in the data file",
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

			keys, err := ds.Locations(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.RenderLocations(keys, cfg.WholeLabel))
			return nil
		},
	}
}
