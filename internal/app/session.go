package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/session"
	"github.com/vinayk98/mini-crm/internal/theme"
)

// sessionRestoredMsg carries a session remembered from an earlier run.
type sessionRestoredMsg struct {
	session session.Session
	err     error
}

// configSavedMsg is sent after settings are written to disk.
type configSavedMsg struct{ err error }

// restoreSession returns a command that loads a remembered session.
func (m Model) restoreSession() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		if sessions == nil {
			return sessionRestoredMsg{err: session.ErrNoSession}
		}
		s, err := sessions.Restore()
		return sessionRestoredMsg{session: s, err: err}
	}
}

// startSession records a fresh sign-in and opens the lead list.
func (m *Model) startSession(u model.User, remember bool) tea.Cmd {
	if m.sessions != nil {
		var err error
		if remember {
			_, err = m.sessions.Start(u)
		} else {
			_, err = m.sessions.StartTransient(u)
		}
		if err != nil {
			m.logger.Warn("session not remembered", "op", "login", "user_id", u.ID, "error", err)
		}
	}
	m.logger.Info("signed in", "user_id", u.ID, "role", u.Role)
	return m.signedIn(u)
}

// signedIn switches to the lead list for u and loads the leads.
func (m *Model) signedIn(u model.User) tea.Cmd {
	m.user = &u
	m.detail.SetUser(u.ID)
	m.currentView = ViewList
	m.previousView = ViewList
	m.notice = ""
	return m.leadList.Fetch()
}

// logout ends the session and returns to the sign-in screen.
func (m *Model) logout() tea.Cmd {
	if m.sessions != nil {
		if err := m.sessions.End(); err != nil {
			m.logger.Error("ending session failed", "op", "logout", "error", err)
		}
	}
	if m.user != nil {
		m.logger.Info("signed out", "user_id", m.user.ID)
	}
	m.user = nil
	m.detailVM.Clear()
	m.currentView = ViewLogin
	m.previousView = ViewLogin
	m.notice = ""
	return m.loginView.Reset()
}

// toggleTheme switches between dark and light and persists the choice.
func (m *Model) toggleTheme() tea.Cmd {
	m.cfg.Display.Theme = theme.Toggle(m.cfg.Display.Theme)
	theme.Apply(m.cfg.Display.Theme)

	if m.configPath == "" {
		return nil
	}
	path := m.configPath
	cfg := *m.cfg
	return func() tea.Msg {
		return configSavedMsg{err: model.SaveConfig(path, &cfg)}
	}
}
