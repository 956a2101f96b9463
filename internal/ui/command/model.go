package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinayk98/mini-crm/internal/query"
	"github.com/vinayk98/mini-crm/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg Command

// Command is a parsed palette entry.
type Command struct {
	Name string
	Arg  string
}

// Spec describes one palette command.
type Spec struct {
	Name  string
	Usage string
	Help  string
}

// Commands lists every command the palette understands.
var Commands = []Spec{
	{Name: "refresh", Usage: "refresh", Help: "reload leads from the server"},
	{Name: "new", Usage: "new", Help: "open the new lead form"},
	{Name: "filter", Usage: "filter <all|new|contacted|qualified|lost>", Help: "filter leads by status"},
	{Name: "sort", Usage: "sort <asc|desc>", Help: "order leads by creation date"},
	{Name: "theme", Usage: "theme", Help: "switch between dark and light"},
	{Name: "logout", Usage: "logout", Help: "sign out"},
	{Name: "quit", Usage: "quit", Help: "exit"},
}

var aliases = map[string]string{
	"q":      "quit",
	"sync":   "refresh",
	"add":    "new",
	"status": "filter",
}

// Parse turns palette input into a Command. Names are case-insensitive;
// arguments to filter and sort are checked and canonicalised.
func Parse(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	name := strings.ToLower(fields[0])
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	arg := strings.Join(fields[1:], " ")

	switch name {
	case "refresh", "new", "theme", "logout", "quit":
		return Command{Name: name}, nil

	case "filter":
		if arg == "" || strings.EqualFold(arg, query.StatusAll) {
			return Command{Name: name, Arg: query.StatusAll}, nil
		}
		for _, s := range query.StatusFilters() {
			if strings.EqualFold(s, arg) {
				return Command{Name: name, Arg: s}, nil
			}
		}
		return Command{}, fmt.Errorf("unknown status %q", arg)

	case "sort":
		switch strings.ToLower(arg) {
		case string(query.SortAsc), "oldest":
			return Command{Name: name, Arg: string(query.SortAsc)}, nil
		case string(query.SortDesc), "newest", "":
			return Command{Name: name, Arg: string(query.SortDesc)}, nil
		}
		return Command{}, fmt.Errorf("sort takes asc or desc")
	}

	return Command{}, fmt.Errorf("unknown command %q", fields[0])
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	err    string
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	suggestions := make([]string, 0, len(Commands))
	for _, c := range Commands {
		suggestions = append(suggestions, c.Name)
	}
	ti.SetSuggestions(suggestions)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			if raw == "" {
				return m, nil
			}
			c, err := Parse(raw)
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.err = ""
			m.input.Reset()
			return m, func() tea.Msg {
				return CommandMsg(c)
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	parts := []string{
		theme.TitleStyle.Render("Command Palette"),
		m.input.View(),
	}
	if m.err != "" {
		parts = append(parts, "", theme.ErrorStyle.Render(m.err))
	}

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input and clears any error.
func (m *Model) Focus() tea.Cmd {
	m.err = ""
	m.input.Reset()
	return m.input.Focus()
}
