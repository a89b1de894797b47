// Package tui implements the interactive location picker.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/krkonrad/Calculation-data/internal/report"
)

// State represents the current state of the TUI.
type State int

const (
	StateLoading State = iota
	StateList
	StateReport
)

// helpHeight is the number of lines reserved below the report for key help.
const helpHeight = 2

// locationItem is one entry of the picker list.
type locationItem struct {
	label string
	key   model.LocationKey
}

func (i locationItem) Title() string { return i.label }

func (i locationItem) Description() string {
	if i.key.IsWholePopulation() {
		return "all households"
	}
	return "households in this location"
}

func (i locationItem) FilterValue() string { return i.label }

// Model holds the picker state.
type Model struct {
	ctx      context.Context
	data     Summarizer
	err      error
	selected model.LocationKey
	opts     report.Options
	keymap   KeyMap
	help     help.Model
	list     list.Model
	viewport viewport.Model
	width    int
	height   int
	state    State
	quitting bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	cfg = cfg.withDefaults()

	l := list.New(nil, list.NewDefaultDelegate(), cfg.Width, cfg.Height)
	l.Title = "Locations"
	// The model owns quitting so that q and esc mean the same thing in every view.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	return Model{
		ctx:      ctx,
		data:     cfg.Data,
		opts:     cfg.Report,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		list:     l,
		viewport: viewport.New(cfg.Width, cfg.Height-helpHeight),
		width:    cfg.Width,
		height:   cfg.Height,
		state:    StateLoading,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return loadLocations(m.ctx, m.data)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case locationsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.keys))
		for _, k := range msg.keys {
			items = append(items, locationItem{key: k, label: k.Label(m.opts.WholeLabel)})
		}
		m.state = StateList
		return m, m.list.SetItems(items)

	case summaryLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selected = msg.key
		if msg.ok {
			m.viewport.SetContent(report.Render(msg.summary, m.opts))
		} else {
			m.viewport.SetContent(report.RenderEmpty(msg.key, m.opts))
		}
		m.viewport.GotoTop()
		m.state = StateReport
		return m, nil
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) || m.err != nil {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateReport:
		switch {
		case key.Matches(msg, m.keymap.Back):
			m.state = StateList
			return m, nil
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		}

	case StateList:
		// While filtering, every key belongs to the filter input.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keymap.Select):
			item, ok := m.list.SelectedItem().(locationItem)
			if !ok {
				return m, nil
			}
			return m, loadSummary(m.ctx, m.data, item.key)
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Back) && m.list.FilterState() == list.Unfiltered:
			m.quitting = true
			return m, tea.Quit
		}

	default:
		if key.Matches(msg, m.keymap.Quit, m.keymap.Back) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m.forward(msg)
}

// forward hands msg to the component of the active view.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateList:
		m.list, cmd = m.list.Update(msg)
	case StateReport:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleResize() {
	m.list.SetSize(m.width, m.height)
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-helpHeight, 1)
	m.help.Width = m.width
}
