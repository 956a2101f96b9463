package app

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayk98/mini-crm/internal/logging"
	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/session"
	"github.com/vinayk98/mini-crm/internal/store"
	"github.com/vinayk98/mini-crm/internal/theme"
	"github.com/vinayk98/mini-crm/internal/ui/command"
	"github.com/vinayk98/mini-crm/internal/ui/leadform"
	"github.com/vinayk98/mini-crm/internal/ui/leadlist"
	"github.com/vinayk98/mini-crm/internal/ui/login"
	"github.com/vinayk98/mini-crm/internal/viewmodel"
	"github.com/vinayk98/mini-crm/tests/testutil"
)

var salesUser = model.User{ID: 2, Email: "sales@gmail.com", Role: model.RoleSales}

func newTestApp(t *testing.T) (Model, *store.SQLiteStore, string) {
	t.Helper()
	s := testutil.NewTestStore(t)
	m, cfgPath := newTestAppWithLeads(t, s, s)
	return m, s, cfgPath
}

// newTestAppWithLeads lets a test put its own lead collection in front of s.
func newTestAppWithLeads(t *testing.T, s *store.SQLiteStore, leads viewmodel.LeadCollection) (Model, string) {
	t.Helper()
	_, err := s.CreateUser(context.Background(), salesUser, "Sales@123")
	require.NoError(t, err)

	logger := logging.Discard()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	m := New(Deps{
		Leads:      viewmodel.NewLeads(leads, viewmodel.WithLogger(logger)),
		Detail:     viewmodel.NewDetail(s, s, s, viewmodel.WithLogger(logger)),
		Auth:       s,
		Session:    session.NewManager(nil),
		Config:     model.DefaultAppConfig(),
		ConfigPath: cfgPath,
		Logger:     logger,
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, cfgPath
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.Update(msg)
	return mdl.(Model), cmd
}

// signIn logs salesUser in and feeds the resulting lead fetch back.
func signIn(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := update(m, login.LoggedInMsg{User: salesUser})
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())
	return m
}

func TestInit_WithoutSessionShowsLogin(t *testing.T) {
	m, _, _ := newTestApp(t)

	m, cmd := update(m, m.Init()())

	assert.Equal(t, ViewLogin, m.currentView)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Sign in")
}

func TestSignIn_LoadsLeads(t *testing.T) {
	m, s, _ := newTestApp(t)
	testutil.SeedLead(t, s, "Asha Rao", "9876543210")
	testutil.SeedLead(t, s, "Ravi Kumar", "9123456789")

	m = signIn(t, m)

	assert.Equal(t, ViewList, m.currentView)
	assert.Equal(t, viewmodel.StateReady, m.leads.State())
	assert.Len(t, m.leads.Leads(), 2)
	view := m.View()
	assert.Contains(t, view, "sales@gmail.com")
	assert.Contains(t, view, "Asha Rao")
}

func TestSaveLead_CreateAndEdit(t *testing.T) {
	m, _, _ := newTestApp(t)
	m = signIn(t, m)

	draft := model.LeadDraft{
		Name:       "Meera Iyer",
		Phone:      "9988776655",
		Status:     model.StatusNew,
		Source:     model.SourceReferral,
		AssignedTo: 2,
	}
	m, cmd := update(m, leadform.LeadSubmittedMsg{Draft: draft})
	require.NotNil(t, cmd)
	saved, ok := cmd().(leadSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	m, cmd = update(m, saved)
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())

	leads := m.leads.Leads()
	require.Len(t, leads, 1)
	assert.Equal(t, "Meera Iyer", leads[0].Name)

	draft.Status = model.StatusQualified
	m, cmd = update(m, leadform.LeadSubmittedMsg{LeadID: leads[0].ID, Draft: draft})
	saved = cmd().(leadSavedMsg)
	require.NoError(t, saved.err)
	m, _ = update(m, saved)

	lead, ok := m.leads.Find(leads[0].ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusQualified, lead.Status)
	assert.Equal(t, ViewList, m.currentView)
}

// duplicatePhoneStore rejects every new lead the way the server does for
// a field it will not accept.
type duplicatePhoneStore struct {
	*store.SQLiteStore
}

func (duplicatePhoneStore) CreateLead(context.Context, model.LeadDraft) (*model.Lead, error) {
	return nil, model.NewValidationError("phone", "Phone is already used by another lead.")
}

func TestSaveLead_RejectedReopensForm(t *testing.T) {
	s := testutil.NewTestStore(t)
	m, _ := newTestAppWithLeads(t, s, duplicatePhoneStore{s})
	m = signIn(t, m)

	draft := model.LeadDraft{
		Name:       "Meera Iyer",
		Phone:      "9988776655",
		Status:     model.StatusNew,
		Source:     model.SourceReferral,
		AssignedTo: 2,
	}
	m, cmd := update(m, leadform.LeadSubmittedMsg{Draft: draft})
	saved := cmd().(leadSavedMsg)
	require.Error(t, saved.err)
	assert.Equal(t, "Failed to add lead", m.leads.Err())

	m, cmd = update(m, saved)
	assert.NotNil(t, cmd)
	assert.Equal(t, ViewForm, m.currentView)
	assert.False(t, m.form.Editing())
	assert.Empty(t, m.leads.Err())
	view := m.View()
	assert.Contains(t, view, "Phone is already used by another lead.")
	assert.Empty(t, m.leads.Leads())
}

func TestSaveLead_NetworkFailureStaysOnList(t *testing.T) {
	m, s, _ := newTestApp(t)
	m = signIn(t, m)
	lead := testutil.SeedLead(t, s, "Asha Rao", "9876543210")

	m, _ = update(m, leadSavedMsg{leadID: lead.ID, err: &model.NetworkError{Err: context.DeadlineExceeded}})

	assert.Equal(t, ViewList, m.currentView)
}

func TestCommand_FilterAndSort(t *testing.T) {
	m, _, _ := newTestApp(t)
	m = signIn(t, m)

	m, _ = update(m, command.CommandMsg{Name: "filter", Arg: "Lost"})
	assert.Equal(t, "Lost", m.leadList.Params().Status)

	m, _ = update(m, command.CommandMsg{Name: "sort", Arg: "asc"})
	assert.Equal(t, "asc", string(m.leadList.Params().SortDir))
	assert.Equal(t, ViewList, m.currentView)
}

func TestCommand_ThemeIsPersisted(t *testing.T) {
	t.Cleanup(func() { theme.Apply(model.ThemeDark) })

	m, _, cfgPath := newTestApp(t)
	m = signIn(t, m)

	m, cmd := update(m, command.CommandMsg{Name: "theme"})
	require.NotNil(t, cmd)
	assert.Equal(t, model.ThemeLight, m.cfg.Display.Theme)

	saved, ok := cmd().(configSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)

	cfg, err := model.LoadConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, cfg.Display.Theme)
}

func TestCommand_Logout(t *testing.T) {
	m, _, _ := newTestApp(t)
	m = signIn(t, m)

	m, _ = update(m, command.CommandMsg{Name: "logout"})

	assert.Equal(t, ViewLogin, m.currentView)
	assert.Nil(t, m.user)
	_, err := m.sessions.Current()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestCommand_IgnoredWhenSignedOut(t *testing.T) {
	m, _, _ := newTestApp(t)

	_, cmd := update(m, command.CommandMsg{Name: "refresh"})
	assert.Nil(t, cmd)
}

func TestQuitKeyOnList(t *testing.T) {
	m, _, _ := newTestApp(t)
	m = signIn(t, m)

	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSelectLeadOpensDetail(t *testing.T) {
	m, s, _ := newTestApp(t)
	lead := testutil.SeedLead(t, s, "Asha Rao", "9876543210")
	m = signIn(t, m)

	m, cmd := update(m, leadlist.SelectedLeadMsg{LeadID: lead.ID})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewDetail, m.currentView)

	m, _ = update(m, cmd())
	assert.Equal(t, viewmodel.DetailReady, m.detailVM.State())
	assert.Contains(t, m.View(), "Notes (0)")
}
