package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/query"
	"github.com/vinayk98/mini-crm/internal/ui/command"
	"github.com/vinayk98/mini-crm/internal/ui/leadlist"
)

// openCreateForm shows the empty lead form. New leads default to the
// signed-in user.
func (m *Model) openCreateForm() tea.Cmd {
	assignee := 0
	if m.user != nil {
		assignee = m.user.ID
	}
	m.previousView = ViewList
	m.currentView = ViewForm
	return m.form.StartCreate(assignee)
}

// leadSavedMsg reports the outcome of a lead form submission.
type leadSavedMsg struct {
	leadID string
	draft  model.LeadDraft
	err    error
}

// saveLead creates a lead, or replaces every field of an existing one.
func (m Model) saveLead(id string, draft model.LeadDraft) tea.Cmd {
	vm := m.leads
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if id == "" {
			err = vm.Create(ctx, draft)
		} else {
			err = vm.Update(ctx, id, model.PatchFromDraft(draft))
		}
		return leadSavedMsg{leadID: id, draft: draft, err: err}
	}
}

// handleLeadSaved reloads the list, or reopens the form when the backend
// rejected the fields so the user can fix them.
func (m *Model) handleLeadSaved(msg leadSavedMsg) tea.Cmd {
	var ve *model.ValidationError
	if !errors.As(msg.err, &ve) {
		var cmd tea.Cmd
		m.leadList, cmd = m.leadList.Update(leadlist.LeadsLoadedMsg{Err: msg.err})
		return cmd
	}

	// The form shows the rejection; the list notice would repeat it.
	m.leads.ClearErr()
	m.currentView = ViewForm
	cmd := m.form.Resume(msg.leadID, msg.draft)
	m.form.SetError(fieldMessages(ve))
	return cmd
}

// fieldMessages joins the per-field messages of ve in field order.
func fieldMessages(ve *model.ValidationError) string {
	keys := make([]string, 0, len(ve.Fields))
	for k := range ve.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, ve.Fields[k])
	}
	return strings.Join(msgs, " ")
}

// executeCommand runs a parsed command palette entry.
func (m *Model) executeCommand(c command.Command) tea.Cmd {
	if m.user == nil && c.Name != "quit" {
		return nil
	}

	switch c.Name {
	case "refresh":
		return m.leadList.Fetch()
	case "new":
		return m.openCreateForm()
	case "filter":
		m.currentView = ViewList
		return m.leadList.SetStatusFilter(c.Arg)
	case "sort":
		m.currentView = ViewList
		return m.leadList.SetSortDir(query.SortDir(c.Arg))
	case "theme":
		return m.toggleTheme()
	case "logout":
		return m.logout()
	case "quit":
		return tea.Quit
	default:
		return nil
	}
}
