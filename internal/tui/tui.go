// Package tui provides the interactive comparison surface using Bubble
// Tea: service list, detail, cost breakdown and share dialog. All
// selection mutation is dispatched synchronously from Update, so the
// selection store sees one action at a time in the order issued.
package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joss/aicost/internal/catalog"
	"github.com/joss/aicost/internal/logging"
	"github.com/joss/aicost/internal/selection"
	"github.com/joss/aicost/internal/share"
)

// View represents the current view mode
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewBreakdown
	ViewShare
	ViewHelp
)

// Config wires the TUI to its collaborators. Reader and Store are
// injected so tests can run the model against fixtures.
type Config struct {
	Reader       catalog.Reader
	Store        *selection.Store
	BaseURL      string
	FetchTimeout time.Duration
}

type rowKind int

const (
	rowModel rowKind = iota
	rowPlan
)

// detailRow is one selectable row in the detail view: a model, or a
// plan under one billing cycle.
type detailRow struct {
	kind    rowKind
	modelID string
	planID  string
	cycle   selection.BillingCycle
}

// Model is the main TUI model
type Model struct {
	cfg Config
	log *logging.Logger

	view     View
	prevView View
	bdReturn View // where the breakdown was entered from
	width    int
	height   int
	ready    bool
	quitting bool
	errText  string
	toast    string

	// List view
	services    []catalog.Summary
	search      textinput.Model
	searching   bool
	listIdx     int
	loadingList bool

	// Detail view
	current       *catalog.Service
	pendingID     string
	loadingDetail bool
	rows          []detailRow
	rowIdx        int
	editing       bool
	editKind      selection.TokenKind
	tokenInput    textinput.Model

	// Breakdown view
	bdIdx int

	// Share dialog
	shareURL string

	spinner spinner.Model
}

// Message types
type servicesMsg []catalog.Summary
type servicesErrMsg struct{ err error }
type serviceMsg struct {
	id  string
	svc *catalog.Service
}
type serviceErrMsg struct {
	id  string
	err error
}
type copyResultMsg struct{ err error }

// New creates a new TUI model.
func New(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	search := textinput.New()
	search.Placeholder = "Search by name or provider..."
	search.CharLimit = 60
	search.Width = 40

	tokens := textinput.New()
	tokens.CharLimit = 12
	tokens.Width = 12

	return Model{
		cfg:         cfg,
		log:         logging.New("tui"),
		view:        ViewList,
		spinner:     s,
		search:      search,
		tokenInput:  tokens,
		loadingList: true,
	}
}

// Init initializes the TUI
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchServices(m.cfg.Reader, m.cfg.FetchTimeout),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case servicesMsg:
		m.loadingList = false
		m.services = msg
		m.errText = ""
		if m.listIdx >= len(m.filteredServices()) {
			m.listIdx = 0
		}

	case servicesErrMsg:
		m.loadingList = false
		m.services = nil
		m.errText = "Failed to load services: " + msg.err.Error()

	case serviceMsg:
		// Apply only if the result still matches the current
		// navigation target; stale fetches are discarded.
		if msg.id != m.pendingID {
			break
		}
		m.loadingDetail = false
		m.pendingID = ""
		m.current = msg.svc
		m.errText = ""
		m.cfg.Store.AddServiceIfAbsent(*msg.svc)
		m.rows = buildRows(msg.svc)
		m.rowIdx = 0

	case serviceErrMsg:
		if msg.id != m.pendingID {
			break
		}
		m.loadingDetail = false
		m.pendingID = ""
		m.view = ViewList
		m.errText = "Failed to load service: " + msg.err.Error()

	case copyResultMsg:
		if msg.err != nil {
			m.toast = errorStyle.Render("Copy failed: " + msg.err.Error())
		} else {
			m.toast = activeStyle.Render("Share URL copied to clipboard")
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Route typing to the focused search box.
	if m.view == ViewList && m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.view == ViewDetail && m.editing {
		var cmd tea.Cmd
		m.tokenInput, cmd = m.tokenInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.toast = ""

	// Text entry modes intercept everything except commit/cancel.
	if m.view == ViewList && m.searching {
		switch key {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			m.listIdx = 0
			return m, nil
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.listIdx = 0
		return m, cmd
	}
	if m.view == ViewDetail && m.editing {
		switch key {
		case "enter":
			m.commitTokenEdit()
			return m, nil
		case "esc":
			m.editing = false
			m.tokenInput.Blur()
			return m, nil
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.tokenInput, cmd = m.tokenInput.Update(msg)
		return m, cmd
	}

	switch key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "q":
		if m.view == ViewList {
			m.quitting = true
			return m, tea.Quit
		}
		m.goBack()
		return m, nil

	case "esc":
		m.goBack()
		return m, nil

	case "?":
		if m.view == ViewHelp {
			m.view = m.prevView
		} else {
			m.prevView = m.view
			m.view = ViewHelp
		}
		return m, nil

	case "b":
		if m.view == ViewList || m.view == ViewDetail {
			m.bdReturn = m.view
			m.view = ViewBreakdown
			m.bdIdx = 0
		}
		return m, nil

	case "s":
		if m.view == ViewShare {
			return m, nil
		}
		if !m.cfg.Store.HasActive() {
			m.toast = infoStyle.Render("Nothing selected to share yet")
			return m, nil
		}
		token, err := share.Encode(m.cfg.Store.Active())
		if err != nil {
			m.toast = errorStyle.Render("Share failed: " + err.Error())
			return m, nil
		}
		m.shareURL = share.BuildURL(m.cfg.BaseURL, token)
		m.prevView = m.view
		m.view = ViewShare
		return m, nil
	}

	switch m.view {
	case ViewList:
		return m.updateListKey(key)
	case ViewDetail:
		return m.updateDetailKey(key)
	case ViewBreakdown:
		return m.updateBreakdownKey(key)
	case ViewShare:
		if key == "c" {
			return m, copyToClipboard(m.shareURL)
		}
	case ViewHelp:
		m.view = m.prevView
	}
	return m, nil
}

func (m *Model) goBack() {
	switch m.view {
	case ViewDetail:
		m.view = ViewList
		m.current = nil
		m.pendingID = ""
		m.loadingDetail = false
	case ViewBreakdown:
		// The share dialog and help both overwrite prevView, so the
		// breakdown keeps its own return target from when it was
		// entered. Otherwise breakdown → share → esc → esc would loop
		// back into the breakdown forever.
		m.view = m.bdReturn
	case ViewShare, ViewHelp:
		m.view = m.prevView
	}
}

func (m Model) updateListKey(key string) (Model, tea.Cmd) {
	filtered := m.filteredServices()
	switch key {
	case "/":
		m.searching = true
		m.search.Focus()
	case "up", "k":
		if m.listIdx > 0 {
			m.listIdx--
		}
	case "down", "j":
		if m.listIdx < len(filtered)-1 {
			m.listIdx++
		}
	case "enter":
		if m.listIdx >= 0 && m.listIdx < len(filtered) {
			id := filtered[m.listIdx].ID
			m.view = ViewDetail
			m.current = nil
			m.pendingID = id
			m.loadingDetail = true
			return m, fetchService(m.cfg.Reader, id, m.cfg.FetchTimeout)
		}
	}
	return m, nil
}

func (m Model) updateDetailKey(key string) (Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	switch key {
	case "up", "k":
		if m.rowIdx > 0 {
			m.rowIdx--
		}
	case "down", "j":
		if m.rowIdx < len(m.rows)-1 {
			m.rowIdx++
		}
	case " ", "enter":
		if row, ok := m.currentRow(); ok && row.kind == rowModel {
			m.cfg.Store.ToggleModel(m.current.ID, row.modelID)
		}
	case "i", "o":
		row, ok := m.currentRow()
		if !ok || row.kind != rowModel {
			break
		}
		sel, _ := m.cfg.Store.Get(m.current.ID)
		if !modelSelected(sel, row.modelID) {
			m.toast = infoStyle.Render("Select the model first (space)")
			break
		}
		m.editKind = selection.InputTokens
		if key == "o" {
			m.editKind = selection.OutputTokens
		}
		m.tokenInput.SetValue("")
		m.tokenInput.Focus()
		m.editing = true
	case "+", "=":
		if row, ok := m.currentRow(); ok && row.kind == rowPlan {
			m.cfg.Store.ChangePlanQuantity(m.current.ID, row.planID, 1, row.cycle)
		}
	case "-", "_":
		if row, ok := m.currentRow(); ok && row.kind == rowPlan {
			m.cfg.Store.ChangePlanQuantity(m.current.ID, row.planID, -1, row.cycle)
		}
	}
	return m, nil
}

func (m Model) updateBreakdownKey(key string) (Model, tea.Cmd) {
	lines := m.breakdownLines()
	switch key {
	case "up", "k":
		if m.bdIdx > 0 {
			m.bdIdx--
		}
	case "down", "j":
		if m.bdIdx < len(lines)-1 {
			m.bdIdx++
		}
	case "x", "d":
		if m.bdIdx >= 0 && m.bdIdx < len(lines) {
			line := lines[m.bdIdx]
			if line.kind == rowModel {
				m.cfg.Store.RemoveModel(line.serviceID, line.modelID)
			} else {
				m.cfg.Store.RemovePlan(line.serviceID, line.planID, line.cycle)
			}
			if rest := len(m.breakdownLines()); m.bdIdx >= rest && m.bdIdx > 0 {
				m.bdIdx--
			}
		}
	}
	return m, nil
}

// commitTokenEdit parses the entered count and stores it. Anything
// non-numeric coerces to 0.
func (m *Model) commitTokenEdit() {
	row, ok := m.currentRow()
	if !ok || m.current == nil {
		m.editing = false
		m.tokenInput.Blur()
		return
	}
	value, err := strconv.Atoi(m.tokenInput.Value())
	if err != nil || value < 0 {
		value = 0
	}
	m.cfg.Store.SetTokenCount(m.current.ID, row.modelID, m.editKind, value)
	m.editing = false
	m.tokenInput.Blur()
}

func (m *Model) currentRow() (detailRow, bool) {
	if m.rowIdx < 0 || m.rowIdx >= len(m.rows) {
		return detailRow{}, false
	}
	return m.rows[m.rowIdx], true
}

// buildRows flattens a service's models and plans into cursor rows.
// Plans get one row per available billing cycle.
func buildRows(svc *catalog.Service) []detailRow {
	var rows []detailRow
	for _, mdl := range svc.Models {
		rows = append(rows, detailRow{kind: rowModel, modelID: mdl.ID})
	}
	for _, p := range svc.Plans {
		rows = append(rows, detailRow{kind: rowPlan, planID: p.ID, cycle: selection.Monthly})
		if p.YearlyPrice > 0 {
			rows = append(rows, detailRow{kind: rowPlan, planID: p.ID, cycle: selection.Yearly})
		}
	}
	return rows
}

func modelSelected(sel selection.ServiceSelection, modelID string) bool {
	for _, ms := range sel.SelectedModels {
		if ms.ID == modelID {
			return true
		}
	}
	return false
}

// Run starts the TUI.
func Run(cfg Config) error {
	rec := logging.NewRecoveryHandler("tui")
	return rec.WrapError(func() error {
		p := tea.NewProgram(New(cfg), tea.WithAltScreen())
		_, err := p.Run()
		return err
	})
}
