package tui

import "github.com/krkonrad/Calculation-data/internal/model"

type locationsLoadedMsg struct {
	err  error
	keys []model.LocationKey
}

type summaryLoadedMsg struct {
	err     error
	summary model.Summary
	key     model.LocationKey
	ok      bool
}
