package main

import (
	"fmt"

	"github.com/krkonrad/Calculation-data/internal/aggregate"
	"github.com/krkonrad/Calculation-data/internal/config"
	"github.com/krkonrad/Calculation-data/internal/dataset"
	"github.com/krkonrad/Calculation-data/internal/report"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		location     string
		all          bool
		showProgress bool
		barWidth     int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print consumption statistics for a location or for everyone",
		Long: `Print the three statistics for one location: mean consumption per m² by age
band and sex, the five most common first names and mean consumption by sex.
Without --location the whole population is reported.`,
		Example: `  powerstat report -f households.csv
  powerstat report -f households.csv --location Kraków
  powerstat report -f households.db --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all && location != "" {
				return fmt.Errorf("--location and --all are mutually exclusive")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ds, err := loadDataset(cmd.Context(), cfg, showProgress, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			renderOpts := report.Options{WholeLabel: cfg.WholeLabel, BarWidth: barWidth}
			out := cmd.OutOrStdout()

			if all {
				records, err := ds.Records(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, report.RenderAll(aggregate.All(records), renderOpts))
				return nil
			}

			key := dataset.Lookup(location)
			summary, ok, err := ds.Summary(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, report.RenderEmpty(key, renderOpts))
				return nil
			}
			fmt.Fprintln(out, report.Render(summary, renderOpts))
			return nil
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "location to report (default: everyone)")
	cmd.Flags().BoolVar(&all, "all", false, "report every location and everyone")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "show a progress spinner while normalizing")
	cmd.Flags().IntVar(&barWidth, "bar-width", report.DefaultOptions().BarWidth, "width of chart bars")

	return cmd
}
