package leadform

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/theme"
	"github.com/vinayk98/mini-crm/internal/validate"
)

// LeadSubmittedMsg is dispatched when the form is completed. LeadID is
// empty when a new lead is being created.
type LeadSubmittedMsg struct {
	LeadID string
	Draft  model.LeadDraft
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name       string
	email      string
	phone      string
	company    string
	status     model.LeadStatus
	source     model.LeadSource
	assignedTo string
}

// Model is the Bubble Tea model for the lead create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	err      string
	width    int
	height   int
}

// New creates a new lead form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new lead. Status defaults to New
// and source to Website.
func (m *Model) StartCreate(assignee int) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.err = ""
	*m.fb = formBindings{
		status: model.StatusNew,
		source: model.SourceWebsite,
	}
	if assignee > 0 {
		m.fb.assignedTo = strconv.Itoa(assignee)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form pre-filled with an existing lead.
func (m *Model) StartEdit(lead model.Lead) tea.Cmd {
	m.editMode = true
	m.editID = lead.ID
	m.err = ""
	*m.fb = formBindings{
		name:    lead.Name,
		email:   lead.Email,
		phone:   lead.Phone,
		company: lead.Company,
		status:  lead.Status,
		source:  lead.Source,
	}
	if lead.AssignedTo > 0 {
		m.fb.assignedTo = strconv.Itoa(lead.AssignedTo)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Resume reopens the form with a draft the backend rejected so the user
// can correct it. id is empty for a new lead.
func (m *Model) Resume(id string, d model.LeadDraft) tea.Cmd {
	m.editMode = id != ""
	m.editID = id
	m.err = ""
	*m.fb = formBindings{
		name:    d.Name,
		email:   d.Email,
		phone:   d.Phone,
		company: d.Company,
		status:  d.Status,
		source:  d.Source,
	}
	if d.AssignedTo > 0 {
		m.fb.assignedTo = strconv.Itoa(d.AssignedTo)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError shows a submit failure above the form.
func (m *Model) SetError(msg string) {
	m.err = msg
}

// Editing reports whether the form edits an existing lead.
func (m Model) Editing() bool {
	return m.editMode
}

// Update handles messages for the lead form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the lead form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Add Lead"
	if m.editMode {
		titleText = "Edit Lead"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if m.err != "" {
		content += theme.ErrorStyle.Render(m.err) + "\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	statusOpts := make([]huh.Option[model.LeadStatus], len(model.LeadStatuses))
	for i, s := range model.LeadStatuses {
		statusOpts[i] = huh.NewOption(string(s), s)
	}
	sourceOpts := make([]huh.Option[model.LeadSource], len(model.LeadSources))
	for i, s := range model.LeadSources {
		sourceOpts[i] = huh.NewOption(string(s), s)
	}

	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Full name").
				Value(&m.fb.name).
				Validate(fieldCheck(validate.FieldName, validate.Name)),
			huh.NewInput().
				Title("Email").
				Placeholder("name@example.com (optional)").
				Value(&m.fb.email).
				Validate(fieldCheck(validate.FieldEmail, validate.Email)),
			huh.NewInput().
				Title("Phone").
				Placeholder("10 digits").
				CharLimit(10).
				Value(&m.fb.phone).
				Validate(fieldCheck(validate.FieldPhone, validate.Phone)),
			huh.NewInput().
				Title("Company").
				Value(&m.fb.company),
		),
		huh.NewGroup(
			huh.NewSelect[model.LeadStatus]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.fb.status),
			huh.NewSelect[model.LeadSource]().
				Title("Source").
				Options(sourceOpts...).
				Value(&m.fb.source),
			huh.NewInput().
				Title("Assigned To").
				Placeholder("user number").
				Value(&m.fb.assignedTo).
				Validate(fieldCheck(validate.FieldAssignedTo, validate.AssignedTo)),
		),
	).WithKeyMap(km).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	assignee, _ := strconv.Atoi(strings.TrimSpace(m.fb.assignedTo))
	draft := model.LeadDraft{
		Name:       strings.TrimSpace(m.fb.name),
		Email:      strings.TrimSpace(m.fb.email),
		Phone:      strings.TrimSpace(m.fb.phone),
		Status:     m.fb.status,
		Source:     m.fb.source,
		Company:    strings.TrimSpace(m.fb.company),
		AssignedTo: assignee,
	}

	id := ""
	if m.editMode {
		id = m.editID
	}
	return func() tea.Msg { return LeadSubmittedMsg{LeadID: id, Draft: draft} }
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-6, 10)
}

// fieldCheck adapts a validate function to a huh validator that shows
// only the message for field.
func fieldCheck(field string, check func(string) error) func(string) error {
	return func(s string) error {
		err := check(s)
		if err == nil {
			return nil
		}
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			if msg := ve.Field(field); msg != "" {
				return errors.New(msg)
			}
		}
		return err
	}
}
