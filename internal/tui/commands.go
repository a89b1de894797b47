package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/krkonrad/Calculation-data/internal/model"
)

func loadLocations(ctx context.Context, data Summarizer) tea.Cmd {
	return func() tea.Msg {
		keys, err := data.Locations(ctx)
		return locationsLoadedMsg{keys: keys, err: err}
	}
}

// loadSummary aggregates for the given key. The key is bound when the command is
// built, so every entry reports on its own location.
func loadSummary(ctx context.Context, data Summarizer, key model.LocationKey) tea.Cmd {
	return func() tea.Msg {
		s, ok, err := data.Summary(ctx, key)
		return summaryLoadedMsg{key: key, summary: s, ok: ok, err: err}
	}
}
