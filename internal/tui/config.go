package tui

import (
	"context"

	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/report"
)

// Summarizer supplies the picker with locations and per-location summaries.
// *dataset.Dataset satisfies it.
type Summarizer interface {
	Locations(ctx context.Context) ([]model.LocationKey, error)
	Summary(ctx context.Context, key model.LocationKey) (model.Summary, bool, error)
}

// Config holds TUI configuration.
type Config struct {
	Data   Summarizer
	Report report.Options
	Width  int
	Height int
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 80
	}
	if c.Height <= 0 {
		c.Height = 24
	}
	if c.Report.BarWidth <= 0 {
		c.Report = report.DefaultOptions()
	}
	return c
}
