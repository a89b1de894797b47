package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/krkonrad/Calculation-data/internal/dataset"
	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSummarizer returns fixed locations and never finds any records.
type stubSummarizer struct {
	err  error
	keys []model.LocationKey
}

func (s stubSummarizer) Locations(context.Context) ([]model.LocationKey, error) {
	return s.keys, s.err
}

func (s stubSummarizer) Summary(_ context.Context, key model.LocationKey) (model.Summary, bool, error) {
	return model.Summary{Location: key}, false, s.err
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func loadedModel(t *testing.T, data Summarizer) Model {
	t.Helper()
	m := newModel(context.Background(), Config{Data: data, Width: 100, Height: 60})
	require.Equal(t, StateLoading, m.state)

	m, _ = update(t, m, m.Init()())
	require.Equal(t, StateList, m.state)
	return m
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	quitKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestPicker_ListsLocationsWholePopulationLast(t *testing.T) {
	m := loadedModel(t, dataset.FromRecords(testutil.Population()))

	items := m.list.Items()
	require.Len(t, items, 4)
	assert.Equal(t, "Kraków", items[0].(locationItem).label)
	assert.True(t, items[3].(locationItem).key.IsWholePopulation())
	assert.Equal(t, model.DefaultWholePopulationLabel, items[3].(locationItem).label)
}

func TestPicker_SelectShowsReportAndEscReturns(t *testing.T) {
	m := loadedModel(t, dataset.FromRecords(testutil.Population()))

	m, cmd := update(t, m, enterKey)
	require.NotNil(t, cmd)
	msg, ok := cmd().(summaryLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, model.Location("Kraków"), msg.key)
	require.True(t, msg.ok)

	m, _ = update(t, m, msg)
	assert.Equal(t, StateReport, m.state)
	assert.Contains(t, m.View(), "Kraków")
	assert.Contains(t, m.View(), "4 households")

	m, _ = update(t, m, escKey)
	assert.Equal(t, StateList, m.state)
}

func TestPicker_EachEntryReportsItsOwnLocation(t *testing.T) {
	m := loadedModel(t, dataset.FromRecords(testutil.Population()))

	for i, item := range m.list.Items() {
		want := item.(locationItem).key
		m.list.Select(i)

		_, cmd := update(t, m, enterKey)
		require.NotNil(t, cmd)
		msg, ok := cmd().(summaryLoadedMsg)
		require.True(t, ok)
		assert.Equal(t, want, msg.key)
		assert.Equal(t, want, msg.summary.Location)
	}
}

func TestPicker_WholePopulationViaCursor(t *testing.T) {
	m := loadedModel(t, dataset.FromRecords(testutil.Population()))

	for range 3 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	_, cmd := update(t, m, enterKey)
	require.NotNil(t, cmd)
	msg := cmd().(summaryLoadedMsg)
	assert.True(t, msg.key.IsWholePopulation())
	assert.Equal(t, 9, msg.summary.Records)
}

func TestPicker_EmptyResult(t *testing.T) {
	m := loadedModel(t, stubSummarizer{keys: []model.LocationKey{model.Location("Sopot"), model.WholePopulation}})

	_, cmd := update(t, m, enterKey)
	m, _ = update(t, m, cmd())

	assert.Equal(t, StateReport, m.state)
	assert.Contains(t, m.View(), "no data for location Sopot")
}

func TestPicker_Quit(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, m Model) Model
	}{
		{
			name:  "from list",
			setup: func(_ *testing.T, m Model) Model { return m },
		},
		{
			name: "from report",
			setup: func(t *testing.T, m Model) Model {
				_, cmd := update(t, m, enterKey)
				m, _ = update(t, m, cmd())
				return m
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.setup(t, loadedModel(t, dataset.FromRecords(testutil.Population())))

			m, cmd := update(t, m, quitKey)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.quitting)
			assert.Empty(t, m.View())
		})
	}
}

func TestPicker_LoadError(t *testing.T) {
	boom := errors.New("data file unreadable")
	m := newModel(context.Background(), Config{Data: stubSummarizer{err: boom}})

	m, _ = update(t, m, m.Init()())
	assert.ErrorIs(t, m.err, boom)
	assert.Contains(t, m.View(), "data file unreadable")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPicker_Resize(t *testing.T) {
	m := loadedModel(t, dataset.FromRecords(testutil.Population()))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 30-helpHeight, m.viewport.Height)
}

func TestRun_RequiresData(t *testing.T) {
	err := Run(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data source is required")
}
