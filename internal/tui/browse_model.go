// Package tui implements the interactive terminal browser for the product
// table.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/engine"
	listview "github.com/rshade/producttable/internal/tui/list"
)

// ViewState is the screen the browser shows.
type ViewState int

const (
	// ViewStateTable shows the table. It is also used while loading.
	ViewStateTable ViewState = iota
	// ViewStateDetail shows the product under the cursor.
	ViewStateDetail
	// ViewStateQuitting is set once the user quits.
	ViewStateQuitting
)

const (
	defaultWidth         = 120
	defaultHeight        = 30
	searchInputCharLimit = 100
	searchInputWidth     = 40

	// chromeHeight is the number of lines around the rows: title, search,
	// header, summary, pager, help and status.
	chromeHeight = 9
	minRowHeight = 3
)

// catalogLoadedMsg carries the result of the startup load.
type catalogLoadedMsg struct {
	result catalog.Result
}

// statusMsg replaces the status line.
type statusMsg string

// BrowseOptions configures a BrowseModel.
type BrowseOptions struct {
	PageSizeOptions []int
	InitialState    engine.ViewState
	Location        *time.Location
	// CopyFunc writes to the clipboard. Nil means the system clipboard.
	CopyFunc func(string) error
}

// BrowseModel is the Bubble Tea model of the `browse` command. It owns the
// ViewState; every key that changes it recomputes the output.
type BrowseModel struct {
	view      ViewState
	state     engine.ViewState
	products  catalog.Collection
	output    engine.Output
	loaded    bool
	searching bool

	options  []int
	location *time.Location
	copyFunc func(string) error

	input   textinput.Model
	rows    *listview.CursorList[catalog.Product]
	loading *LoadingState
	loadCmd tea.Cmd

	width  int
	height int
	status string
}

// NewBrowseModel creates a model that loads the catalog with loader when the
// program starts. The empty table is shown until the load finishes.
func NewBrowseModel(ctx context.Context, loader catalog.Loader, opts BrowseOptions) *BrowseModel {
	state := opts.InitialState
	if state.PageSize <= 0 {
		state = engine.NewViewState()
	}

	options := opts.PageSizeOptions
	if len(options) == 0 {
		options = []int{5, 10, 20, 50}
	}

	copyFunc := opts.CopyFunc
	if copyFunc == nil {
		copyFunc = clipboard.WriteAll
	}

	m := &BrowseModel{
		view:     ViewStateTable,
		state:    state,
		products: catalog.Collection{},
		options:  options,
		location: opts.Location,
		copyFunc: copyFunc,
		input:    newSearchInput(state.Query),
		loading:  NewLoadingState(),
		width:    defaultWidth,
		height:   defaultHeight,
		loadCmd: func() tea.Msg {
			return catalogLoadedMsg{result: loader.Load(ctx)}
		},
	}
	m.rows = listview.NewCursorList[catalog.Product](nil, m.rowHeight(), m.renderRow)
	m.recompute()
	return m
}

func newSearchInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search by title..."
	ti.Prompt = "Search: "
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	ti.SetValue(value)
	return ti
}

// Init starts the spinner and the load.
func (m *BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.loadCmd)
}

// Update handles messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rows.SetHeight(m.rowHeight())
		return m, nil
	case catalogLoadedMsg:
		m.products = msg.result.Products
		m.loaded = true
		m.recompute()
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	}

	if !m.loaded {
		if cmd := m.loading.Update(msg); cmd != nil {
			return m, cmd
		}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if keyMsg.String() == keyCtrlC {
		m.view = ViewStateQuitting
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(keyMsg)
	}

	switch m.view {
	case ViewStateDetail:
		return m.handleDetailKey(keyMsg)
	case ViewStateTable:
		return m.handleTableKey(keyMsg)
	default:
		return m, nil
	}
}

// handleSearchKey edits the query. Every edit applies immediately and returns
// to the first page.
func (m *BrowseModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.state.Query {
		m.state.SetQuery(m.input.Value())
		m.recompute()
	}
	return m, cmd
}

//nolint:gocyclo,cyclop // One branch per key binding.
func (m *BrowseModel) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		m.view = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.searching = true
		return m, m.input.Focus()
	case keyEsc:
		if m.state.Query != "" {
			m.input.SetValue("")
			m.state.SetQuery("")
			m.recompute()
		}
		return m, nil
	case keySortPrice:
		m.state.ToggleSort(engine.SortPrice)
		m.recompute()
		return m, nil
	case keySortTitle:
		m.state.ToggleSort(engine.SortTitle)
		m.recompute()
		return m, nil
	case keyPrevPage, keyPrevVim:
		if m.output.Meta().HasPrevious() {
			m.gotoPage(m.output.Prev.Target)
		}
		return m, nil
	case keyNextPage, keyNextVim:
		if m.output.Meta().HasNext() {
			m.gotoPage(m.output.Next.Target)
		}
		return m, nil
	case keyFirstPage:
		m.gotoPage(1)
		return m, nil
	case keyLastPage:
		m.gotoPage(m.output.TotalPages)
		return m, nil
	case keyPageSize:
		m.state.SetPageSize(m.nextPageSize())
		m.recompute()
		return m, nil
	case keyCopy:
		return m, m.copyPage()
	case keyEnter:
		if m.rows.SelectedItem() != nil {
			m.view = ViewStateDetail
		}
		return m, nil
	}

	m.rows.HandleKey(msg)
	return m, nil
}

func (m *BrowseModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		m.view = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyBackspace, keyEnter:
		m.view = ViewStateTable
	}
	return m, nil
}

func (m *BrowseModel) gotoPage(page int) {
	m.state.SetPage(page)
	m.recompute()
}

// nextPageSize returns the option after the current size, wrapping around.
func (m *BrowseModel) nextPageSize() int {
	for i, n := range m.options {
		if n == m.state.PageSize {
			return m.options[(i+1)%len(m.options)]
		}
	}
	return m.options[0]
}

func (m *BrowseModel) copyPage() tea.Cmd {
	text := PageTSV(m.output.Rows, m.location)
	rows := len(m.output.Rows)
	copyFunc := m.copyFunc
	return func() tea.Msg {
		if err := copyFunc(text); err != nil {
			return statusMsg("Copy failed: " + err.Error())
		}
		return statusMsg(copiedMessage(rows))
	}
}

func (m *BrowseModel) recompute() {
	m.output = engine.Compute(m.products, m.state)
	m.rows.SetItems(m.output.Rows)
}

func (m *BrowseModel) rowHeight() int {
	h := m.height - chromeHeight
	if h < minRowHeight {
		h = minRowHeight
	}
	return h
}

// State returns the current ViewState.
func (m *BrowseModel) State() engine.ViewState {
	return m.state
}

// Output returns the last computed output.
func (m *BrowseModel) Output() engine.Output {
	return m.output
}

// Loaded reports whether the startup load has finished.
func (m *BrowseModel) Loaded() bool {
	return m.loaded
}

// CurrentView returns the active view.
func (m *BrowseModel) CurrentView() ViewState {
	return m.view
}
