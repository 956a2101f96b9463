package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/theme"
	"github.com/vinayk98/mini-crm/internal/validate"
)

// Authenticator checks credentials against the user collection.
type Authenticator interface {
	FindUser(ctx context.Context, email, password string) (*model.User, error)
}

// LoggedInMsg is dispatched after a successful sign-in.
type LoggedInMsg struct {
	User     model.User
	Remember bool
}

// resultMsg carries the outcome of a credential check.
type resultMsg struct {
	user *model.User
	err  error
}

const (
	msgInvalid     = "Invalid credentials"
	msgUnreachable = "Unable to reach the server. Try again."
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
	remember bool
}

// Model is the sign-in screen.
type Model struct {
	auth      Authenticator
	logger    *slog.Logger
	timeout   time.Duration
	form      *huh.Form
	fb        *formBindings
	spinner   spinner.Model
	signingIn bool
	err       string
	width     int
	height    int
}

// New creates the sign-in screen.
func New(auth Authenticator, logger *slog.Logger, timeout time.Duration, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		auth:    auth,
		logger:  logger,
		timeout: timeout,
		fb:      &formBindings{remember: true},
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Reset clears the password and any error and rebuilds the form.
func (m *Model) Reset() tea.Cmd {
	m.fb.password = ""
	m.signingIn = false
	m.err = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Init builds the form.
func (m Model) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Update handles messages for the sign-in screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.signingIn = false
		switch {
		case msg.err == nil:
			user := *msg.user
			remember := m.fb.remember
			m.fb.password = ""
			return m, func() tea.Msg { return LoggedInMsg{User: user, Remember: remember} }
		case errors.Is(msg.err, model.ErrNotFound):
			m.err = msgInvalid
		default:
			m.err = msgUnreachable
			m.logger.Error("sign-in failed", "op", "login", "error", msg.err)
		}
		m.fb.password = ""
		m.form = m.buildForm()
		return m, m.form.Init()

	case spinner.TickMsg:
		if !m.signingIn {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.form == nil || m.signingIn {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.signingIn = true
		m.err = ""
		return m, tea.Batch(m.spinner.Tick, m.signIn())
	case huh.StateAborted:
		return m, tea.Quit
	}

	return m, cmd
}

func (m Model) signIn() tea.Cmd {
	auth := m.auth
	timeout := m.timeout
	email := strings.ToLower(strings.TrimSpace(m.fb.email))
	password := m.fb.password

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := auth.FindUser(ctx, email, password)
		if err != nil {
			return resultMsg{err: fmt.Errorf("signing in %s: %w", email, err)}
		}
		return resultMsg{user: user}
	}
}

// View renders the sign-in screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		MarginBottom(1)

	content := titleStyle.Render("Mini CRM") + "\n" +
		theme.DimmedStyle.Render("Sign in to manage your leads") + "\n\n"

	if m.err != "" {
		content += theme.ErrorStyle.Render(m.err) + "\n\n"
	}

	if m.signingIn {
		content += m.spinner.View() + " Signing in..."
	} else if m.form != nil {
		content += m.form.View()
	}

	box := theme.DetailPanelStyle.
		Width(min(max(m.width-8, 40), 60)).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@company.com").
				Value(&m.fb.email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("Email is required.")
					}
					if err := validate.Email(s); err != nil {
						return errors.New("Enter a valid email address.")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("Password is required.")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Remember me on this device?").
				Value(&m.fb.remember),
		),
	).WithWidth(min(max(m.width-12, 36), 56)).WithShowHelp(false)
}
