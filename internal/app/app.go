package app

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinayk98/mini-crm/internal/keys"
	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/session"
	"github.com/vinayk98/mini-crm/internal/ui"
	"github.com/vinayk98/mini-crm/internal/ui/command"
	helpview "github.com/vinayk98/mini-crm/internal/ui/help"
	"github.com/vinayk98/mini-crm/internal/ui/leaddetail"
	"github.com/vinayk98/mini-crm/internal/ui/leadform"
	"github.com/vinayk98/mini-crm/internal/ui/leadlist"
	"github.com/vinayk98/mini-crm/internal/ui/login"
	"github.com/vinayk98/mini-crm/internal/viewmodel"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewList
	ViewDetail
	ViewForm
	ViewHelp
	ViewCommand
)

// Deps are the collaborators the root model drives.
type Deps struct {
	Leads      *viewmodel.Leads
	Detail     *viewmodel.Detail
	Auth       login.Authenticator
	Session    *session.Manager
	Config     *model.AppConfig
	ConfigPath string
	Logger     *slog.Logger
}

// Model is the root Bubble Tea model that manages view routing, layout
// and the signed-in session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	leads      *viewmodel.Leads
	detailVM   *viewmodel.Detail
	sessions   *session.Manager
	cfg        *model.AppConfig
	configPath string
	logger     *slog.Logger

	loginView   login.Model
	leadList    leadlist.Model
	detail      leaddetail.Model
	form        leadform.Model
	helpView    helpview.Model
	commandView command.Model

	user   *model.User
	notice string
	ready  bool
}

// New creates the root application model.
func New(d Deps) Model {
	k := keys.DefaultKeyMap()
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := d.Config
	if cfg == nil {
		cfg = model.DefaultAppConfig()
	}

	return Model{
		currentView: ViewLogin,
		keys:        k,
		leads:       d.Leads,
		detailVM:    d.Detail,
		sessions:    d.Session,
		cfg:         cfg,
		configPath:  d.ConfigPath,
		logger:      logger,
		loginView:   login.New(d.Auth, logger, cfg.API.Timeout(), 80, 24),
		leadList:    leadlist.New(d.Leads, k, 80, 24),
		detail:      leaddetail.New(d.Detail, k, 80, 24),
		form:        leadform.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
}

// Init tries to restore a remembered session.
func (m Model) Init() tea.Cmd {
	return m.restoreSession()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(contentWidth, contentHeight)
		m.leadList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.form.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sessionRestoredMsg:
		if msg.err != nil {
			m.currentView = ViewLogin
			cmd := m.loginView.Reset()
			return m, cmd
		}
		cmd := m.signedIn(msg.session.User)
		return m, cmd

	case login.LoggedInMsg:
		cmd := m.startSession(msg.User, msg.Remember)
		return m, cmd

	case leadlist.LeadsLoadedMsg:
		var cmd tea.Cmd
		m.leadList, cmd = m.leadList.Update(msg)
		return m, cmd

	case leadlist.SelectedLeadMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		cmd := m.detail.Open(msg.LeadID)
		return m, cmd

	case leadlist.NewLeadMsg:
		cmd := m.openCreateForm()
		return m, cmd

	case leadlist.EditLeadMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		cmd := m.form.StartEdit(msg.Lead)
		return m, cmd

	case leadform.LeadSubmittedMsg:
		m.currentView = ViewList
		return m, m.saveLead(msg.LeadID, msg.Draft)

	case leadSavedMsg:
		cmd := m.handleLeadSaved(msg)
		return m, cmd

	case leadform.FormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case leaddetail.LoadedMsg, leaddetail.ActionMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case leaddetail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(command.Command(msg))
		return m, cmd

	case configSavedMsg:
		if msg.err != nil {
			m.notice = "Could not save settings"
			m.logger.Error("saving config failed", "op", "save_config", "path", m.configPath, "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.captureInput() {
			break
		}
		m.notice = ""

		switch {
		case key.Matches(msg, m.keys.Quit) && m.currentView == ViewList:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back) && (m.currentView == ViewHelp || m.currentView == ViewCommand):
			m.currentView = m.previousView
			return m, nil

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Command):
			m.previousView = m.currentView
			m.currentView = ViewCommand
			cmd := m.commandView.Focus()
			return m, cmd

		case key.Matches(msg, m.keys.Refresh) && m.currentView == ViewList:
			return m, m.leadList.Fetch()

		case key.Matches(msg, m.keys.Theme):
			cmd := m.toggleTheme()
			return m, cmd

		case key.Matches(msg, m.keys.Logout):
			cmd := m.logout()
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// captureInput reports whether the active view owns every key press, so
// global bindings must not fire.
func (m Model) captureInput() bool {
	switch m.currentView {
	case ViewLogin, ViewForm:
		return true
	case ViewCommand:
		return true
	case ViewList:
		return m.leadList.Searching()
	case ViewDetail:
		return m.detail.InputActive()
	}
	return false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewList:
		m.leadList, cmd = m.leadList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil
		}
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Mini CRM", m.userLabel())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.currentNotice())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewList:
		return m.leadList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewForm:
		return m.form.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

func (m Model) userLabel() string {
	if m.user == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", m.user.Email, m.user.Role)
}

// currentNotice returns the failure message to show in the status bar.
func (m Model) currentNotice() string {
	if m.notice != "" {
		return m.notice
	}
	switch m.currentView {
	case ViewList:
		return m.leads.Err()
	case ViewDetail:
		if m.detailVM.State() == viewmodel.DetailError {
			return ""
		}
		return m.detailVM.Err()
	}
	return ""
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewLogin:
		return "enter next | shift+tab back | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		if m.detail.InputActive() {
			return "enter save | esc cancel"
		}
		if m.detail.Tab() == leaddetail.TabFollowUps {
			return "esc back | tab notes | F schedule | j/k move | x mark done | r refresh"
		}
		return "esc back | tab follow-ups | a add note | F schedule | r refresh"
	case ViewForm:
		return "enter next | shift+tab back | esc cancel"
	default:
		if m.leadList.Searching() {
			return "enter apply | esc clear"
		}
		return "q quit | ? help | / search | f status | s sort | h/l page | n new | e edit | d delete"
	}
}
