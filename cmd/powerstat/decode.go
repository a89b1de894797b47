package main

import (
	"fmt"

	"github.com/krkonrad/Calculation-data/internal/cli"
	"github.com/krkonrad/Calculation-data/internal/config"
	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/normalize"
	"github.com/krkonrad/Calculation-data/internal/pesel"
	"github.com/spf13/cobra"
)

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode CODE...",
		Short: "Decode PESEL identity codes into birth date, sex and age",
		Example: `  powerstat decode 85021512349
  powerstat decode --reference-date 2024-06-01 02221512349 85021512349`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, code := range args {
				id, err := pesel.Decode(code)
				if err != nil {
					failed++
					fmt.Fprintln(out, cli.FormatError(err.Error()))
					continue
				}

				line := fmt.Sprintf("%s  %-6s  born %s", code, id.Sex, id.BirthDate.Format(config.DateLayout))
				if age, ok := normalize.Age(id.BirthDate, cfg.ReferenceDate); ok {
					band := "unbinned"
					if b, binned := model.BinAge(age); binned {
						band = b.String()
					}
					line += fmt.Sprintf("  age %d (%s)", age, band)
				} else {
					line += "  born after the reference date"
				}
				fmt.Fprintln(out, cli.FormatSuccess(line))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d identity codes could not be decoded", failed, len(args))
			}
			return nil
		},
	}
}
