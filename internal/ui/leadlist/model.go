package leadlist

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinayk98/mini-crm/internal/keys"
	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/query"
	"github.com/vinayk98/mini-crm/internal/theme"
	"github.com/vinayk98/mini-crm/internal/viewmodel"
)

// LeadsLoadedMsg is sent after a fetch or a delete has finished. Err is
// nil on success.
type LeadsLoadedMsg struct {
	Err error
}

// SelectedLeadMsg is sent when a user opens a lead.
type SelectedLeadMsg struct {
	LeadID string
}

// NewLeadMsg asks the parent to open the empty lead form.
type NewLeadMsg struct{}

// EditLeadMsg asks the parent to open the lead form pre-filled.
type EditLeadMsg struct {
	Lead model.Lead
}

// Model is the lead table view: one page of the filtered, sorted leads.
type Model struct {
	list        list.Model
	vm          *viewmodel.Leads
	keys        *keys.KeyMap
	params      query.Params
	page        int
	result      query.Result
	searchMode  bool
	searchInput textinput.Model
	confirm     *model.Lead
	width       int
	height      int
}

// New creates a new lead list over vm.
func New(vm *viewmodel.Leads, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, LeadDelegate{}, width, height-3)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	si := textinput.New()
	si.Placeholder = "name or phone..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list: l,
		vm:   vm,
		keys: k,
		params: query.Params{
			Status:  query.StatusAll,
			SortDir: query.SortDesc,
		},
		page:        1,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the leads.
func (m Model) Init() tea.Cmd {
	return m.Fetch()
}

// Fetch returns a command that refetches the whole collection.
func (m Model) Fetch() tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return LeadsLoadedMsg{Err: vm.FetchAll(context.Background())}
	}
}

// Delete returns a command that deletes a lead and refetches.
func (m Model) Delete(id string) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return LeadsLoadedMsg{Err: vm.Delete(context.Background(), id)}
	}
}

// Update handles messages for the lead list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LeadsLoadedMsg:
		cmd := m.Refresh()
		return m, cmd

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.handleConfirmKeys(msg)
		}
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Searching reports whether the search box has focus.
func (m Model) Searching() bool {
	return m.searchMode || m.confirm != nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	lead := m.confirm
	m.confirm = nil
	if strings.EqualFold(msg.String(), "y") {
		return m, m.Delete(lead.ID)
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.params.Search = ""
		m.page = 1
		cmd := m.Refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.params.Search {
		m.params.Search = m.searchInput.Value()
		m.page = 1
		refresh := m.Refresh()
		return m, tea.Batch(cmd, refresh)
	}
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		lead, ok := m.SelectedLead()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedLeadMsg{LeadID: lead.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.params.Search)
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleStatus):
		m.CycleStatus()
		cmd := m.Refresh()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleSort):
		m.params.SortDir = query.NextSortDir(m.params.SortDir)
		cmd := m.Refresh()
		return m, cmd

	case key.Matches(msg, m.keys.NextPage):
		if m.page < m.result.TotalPages {
			m.page++
		}
		cmd := m.Refresh()
		return m, cmd

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 1 {
			m.page--
		}
		cmd := m.Refresh()
		return m, cmd

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewLeadMsg{} }

	case key.Matches(msg, m.keys.Edit):
		lead, ok := m.SelectedLead()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditLeadMsg{Lead: lead} }

	case key.Matches(msg, m.keys.Delete):
		if lead, ok := m.SelectedLead(); ok {
			m.confirm = &lead
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// CycleStatus advances the status filter through All and each status.
func (m *Model) CycleStatus() {
	filters := query.StatusFilters()
	i := slices.IndexFunc(filters, func(s string) bool {
		return strings.EqualFold(s, m.params.Status)
	})
	m.params.Status = filters[(i+1)%len(filters)]
	m.page = 1
}

// SetStatusFilter selects a status filter and returns to the first page.
func (m *Model) SetStatusFilter(status string) tea.Cmd {
	m.params.Status = status
	m.page = 1
	return m.Refresh()
}

// SetSortDir selects the creation date order.
func (m *Model) SetSortDir(dir query.SortDir) tea.Cmd {
	m.params.SortDir = dir
	return m.Refresh()
}

// Params returns the current query parameters.
func (m Model) Params() query.Params {
	return m.params
}

// Page returns the current 1-based page number.
func (m Model) Page() int {
	return m.page
}

// Refresh recomputes the visible page from the view-model snapshot.
func (m *Model) Refresh() tea.Cmd {
	m.result = m.vm.Page(m.params, m.page)
	if m.page > m.result.TotalPages {
		m.page = m.result.TotalPages
		m.result = m.vm.Page(m.params, m.page)
	}

	items := make([]list.Item, len(m.result.Items))
	for i, l := range m.result.Items {
		items[i] = LeadItem{Lead: l}
	}
	return m.list.SetItems(items)
}

// SelectedLead returns the highlighted lead.
func (m Model) SelectedLead() (model.Lead, bool) {
	item, ok := m.list.SelectedItem().(LeadItem)
	if !ok {
		return model.Lead{}, false
	}
	return item.Lead, true
}

// Summary describes the active filters and paging for the status bar.
func (m Model) Summary() string {
	order := "newest first"
	if m.params.SortDir == query.SortAsc {
		order = "oldest first"
	}
	parts := []string{
		"status: " + m.params.Status,
		order,
		fmt.Sprintf("page %d/%d", m.page, m.result.TotalPages),
		fmt.Sprintf("%d leads", m.result.Total),
	}
	if s := strings.TrimSpace(m.params.Search); s != "" {
		parts = append(parts, fmt.Sprintf("search: %q", s))
	}
	return strings.Join(parts, " | ")
}

// View renders the lead table.
func (m Model) View() string {
	var top string
	switch {
	case m.confirm != nil:
		top = theme.ErrorStyle.Render(fmt.Sprintf("Delete %s? (y/n)", m.confirm.Name))
	case m.searchMode:
		top = m.searchInput.View()
	default:
		top = theme.HelpStyle.Render(m.Summary())
	}
	top = lipgloss.NewStyle().Padding(0, 1).Render(top)

	if len(m.result.Items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, top, m.renderEmptyState())
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, headerRow(), m.list.View())
}

// renderEmptyState shows guidance text when no leads are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(max(m.height-2, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch {
	case m.vm.State() == viewmodel.StateLoading || m.vm.State() == viewmodel.StateIdle:
		return style.Render("Loading leads...")
	case m.result.Total == 0 && (m.params.Search != "" || m.params.Status != query.StatusAll):
		return style.Render("No matching leads.\nTry adjusting your filters.")
	case m.result.Total > 0:
		return style.Render("Nothing on this page.")
	default:
		return style.Render("No leads yet.\n\nPress n to add one.")
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-3, 1))
	m.searchInput.Width = width - 4
}
