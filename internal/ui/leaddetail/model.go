package leaddetail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinayk98/mini-crm/internal/keys"
	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/theme"
	"github.com/vinayk98/mini-crm/internal/validate"
	"github.com/vinayk98/mini-crm/internal/viewmodel"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// LoadedMsg is sent when a lead and its activity have been fetched.
type LoadedMsg struct {
	LeadID string
	Err    error
}

// ActionMsg is sent when adding a note, scheduling or completing a
// follow-up has finished.
type ActionMsg struct {
	LeadID string
	Err    error
}

// Tab selects the activity list shown under the lead.
type Tab int

const (
	TabNotes Tab = iota
	TabFollowUps
)

type inputMode int

const (
	modeNone inputMode = iota
	modeNote
	modeDate
)

// Model is the lead detail view component.
type Model struct {
	vm       *viewmodel.Detail
	keys     *keys.KeyMap
	viewport viewport.Model
	input    textinput.Model
	mode     inputMode
	inputErr string
	busy     bool
	tab      Tab
	cursor   int
	userID   int
	now      func() time.Time
	width    int
	height   int
}

// New creates a new detail view model over vm.
func New(vm *viewmodel.Detail, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()

	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = width - 6

	return Model{
		vm:       vm,
		keys:     k,
		viewport: vp,
		input:    ti,
		now:      time.Now,
		width:    width,
		height:   height,
	}
}

// SetUser records who is signed in; new notes are attributed to them.
func (m *Model) SetUser(id int) {
	m.userID = id
}

// Open resets the view for leadID and returns the command that loads it.
func (m *Model) Open(leadID string) tea.Cmd {
	m.tab = TabNotes
	m.cursor = 0
	m.closeInput()
	m.viewport.GotoTop()
	return m.load(leadID)
}

func (m Model) load(leadID string) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return LoadedMsg{LeadID: leadID, Err: vm.Load(context.Background(), leadID)}
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// InputActive reports whether a text input has focus, so global key
// bindings should not fire.
func (m Model) InputActive() bool {
	return m.mode != modeNone
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.clampCursor()
		return m, nil

	case ActionMsg:
		m.busy = false
		var ve *model.ValidationError
		if errors.As(msg.Err, &ve) {
			m.inputErr = ve.Field(m.inputField())
			if m.inputErr == "" {
				m.inputErr = ve.Error()
			}
			return m, nil
		}
		m.closeInput()
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNone {
			return m.handleInputKeys(msg)
		}
		if cmd, handled := m.handleKeys(msg); handled {
			return m, cmd
		}
	}

	// Delegate to viewport for scrolling (pgup/pgdn, mouse)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	leadID := m.vm.LeadID()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.vm.Clear()
		return func() tea.Msg { return BackMsg{} }, true

	case key.Matches(msg, m.keys.Refresh):
		if leadID == "" {
			return nil, true
		}
		return m.load(leadID), true
	}

	if m.vm.State() != viewmodel.DetailReady {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.SwitchTab):
		if m.tab == TabNotes {
			m.tab = TabFollowUps
		} else {
			m.tab = TabNotes
		}
		m.cursor = 0
		return nil, true

	case key.Matches(msg, m.keys.AddNote):
		m.tab = TabNotes
		m.openInput(modeNote, "Note: ", "")
		return textinput.Blink, true

	case key.Matches(msg, m.keys.ScheduleNext):
		m.tab = TabFollowUps
		m.openInput(modeDate, "Date (YYYY-MM-DD): ", m.now().Format(model.DateLayout))
		return textinput.Blink, true

	case m.tab == TabFollowUps && key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.vm.FollowUps())-1 {
			m.cursor++
		}
		return nil, true

	case m.tab == TabFollowUps && key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return nil, true

	case m.tab == TabFollowUps && key.Matches(msg, m.keys.MarkDone):
		f, ok := m.selectedFollowUp()
		if !ok || f.IsCompleted() {
			return nil, true
		}
		vm := m.vm
		return func() tea.Msg {
			return ActionMsg{LeadID: leadID, Err: vm.MarkFollowUpDone(context.Background(), f.ID, leadID)}
		}, true
	}

	return nil, false
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil

	case tea.KeyEnter:
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.inputErr = ""
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	vm := m.vm
	leadID := vm.LeadID()
	value := m.input.Value()

	switch m.mode {
	case modeNote:
		userID := m.userID
		return func() tea.Msg {
			return ActionMsg{LeadID: leadID, Err: vm.AddNote(context.Background(), leadID, value, userID)}
		}
	case modeDate:
		return func() tea.Msg {
			return ActionMsg{LeadID: leadID, Err: vm.ScheduleFollowUp(context.Background(), leadID, value)}
		}
	}
	return nil
}

func (m *Model) openInput(mode inputMode, prompt, value string) {
	m.mode = mode
	m.inputErr = ""
	m.busy = false
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeNone
	m.inputErr = ""
	m.busy = false
	m.input.Blur()
	m.input.Reset()
}

func (m Model) inputField() string {
	if m.mode == modeDate {
		return validate.FieldDate
	}
	return validate.FieldContent
}

func (m Model) selectedFollowUp() (model.FollowUp, bool) {
	followUps := m.vm.FollowUps()
	if m.cursor < 0 || m.cursor >= len(followUps) {
		return model.FollowUp{}, false
	}
	return followUps[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.vm.FollowUps())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// Tab returns the active tab.
func (m Model) Tab() Tab {
	return m.tab
}

// View renders the detail view.
func (m Model) View() string {
	center := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch m.vm.State() {
	case viewmodel.DetailIdle:
		return center.Render("No lead selected")
	case viewmodel.DetailLoading:
		return center.Render("Loading lead...")
	case viewmodel.DetailNotFound:
		return center.Render(
			theme.TitleStyle.Render("Lead not found") + "\n\n" +
				"It may have been deleted. Press esc to go back.",
		)
	case viewmodel.DetailError:
		return center.Render(theme.ErrorStyle.Render(m.vm.Err()) + "\n\nPress r to retry or esc to go back.")
	}

	var footer string
	if m.mode != modeNone {
		footer = m.input.View()
		if m.inputErr != "" {
			footer += "\n" + theme.ErrorStyle.Render(m.inputErr)
		}
		footer = theme.DetailPanelStyle.Width(max(m.width-4, 20)).Render(footer)
	}

	vp := m.viewport
	vp.Height = max(m.height-lipgloss.Height(footer), 1)
	if footer == "" {
		vp.Height = m.height
	}
	vp.SetContent(m.renderContent())

	if footer == "" {
		return vp.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, vp.View(), footer)
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	lead, ok := m.vm.Lead()
	if !ok {
		return ""
	}

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	badges := lipgloss.JoinHorizontal(
		lipgloss.Top,
		theme.StatusStyle(lead.Status).Render(string(lead.Status)),
		"  ",
		theme.SourceStyle(lead.Source).Render(string(lead.Source)),
	)
	sections = append(sections, titleStyle.Render(lead.Name), badges, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(13)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	meta := [][2]string{
		{"Phone:", lead.Phone},
		{"Email:", orDash(lead.Email)},
		{"Company:", orDash(lead.Company)},
		{"Assigned To:", fmt.Sprintf("User #%d", lead.AssignedTo)},
		{"Created:", lead.CreatedAt.Local().Format("2006-01-02 15:04")},
	}
	for _, kv := range meta {
		sections = append(sections, metaStyle.Render(kv[0])+valStyle.Render(kv[1]))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 1)))
	sections = append(sections, "", separator, m.renderTabs(), "")

	if m.tab == TabNotes {
		sections = append(sections, m.renderNotes()...)
	} else {
		sections = append(sections, m.renderFollowUps()...)
	}

	if m.vm.Loading() {
		sections = append(sections, "", theme.DimmedStyle.Render("Loading..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	notes := fmt.Sprintf("Notes (%d)", len(m.vm.Notes()))
	followUps := fmt.Sprintf("Follow-ups (%d)", len(m.vm.FollowUps()))

	if m.tab == TabNotes {
		return theme.ActiveTabStyle.Render(notes) + theme.InactiveTabStyle.Render(followUps)
	}
	return theme.InactiveTabStyle.Render(notes) + theme.ActiveTabStyle.Render(followUps)
}

func (m Model) renderNotes() []string {
	notes := m.vm.Notes()
	if len(notes) == 0 {
		return []string{theme.DimmedStyle.Italic(true).Render("No notes yet. Press a to add one.")}
	}

	authorStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	timeStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	var lines []string
	for _, n := range notes {
		lines = append(lines,
			fmt.Sprintf("%s  %s",
				authorStyle.Render(fmt.Sprintf("User #%d", n.CreatedBy)),
				timeStyle.Render(n.CreatedAt.Local().Format("2006-01-02 15:04")),
			),
			lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(n.Content),
			"",
		)
	}
	return lines
}

func (m Model) renderFollowUps() []string {
	followUps := m.vm.FollowUps()
	if len(followUps) == 0 {
		return []string{theme.DimmedStyle.Italic(true).Render("No follow-ups scheduled. Press F to add one.")}
	}

	var lines []string
	for i, f := range followUps {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		row := fmt.Sprintf("%s  %s", f.Date.String(), f.Status)
		if !f.IsCompleted() && i == m.cursor {
			row += theme.DimmedStyle.Render("   x mark done")
		}
		lines = append(lines, marker+theme.FollowUpStyle(f.Status).Render(row))
	}
	return lines
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.input.Width = width - 6
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
