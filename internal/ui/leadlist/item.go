package leadlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/theme"
)

// LeadItem wraps a model.Lead so it can be used in a bubbles/list.
type LeadItem struct {
	Lead model.Lead
}

// FilterValue returns the string used for list filtering.
func (i LeadItem) FilterValue() string { return i.Lead.Name }

// Title returns the lead name.
func (i LeadItem) Title() string { return i.Lead.Name }

// Description returns a short summary line.
func (i LeadItem) Description() string {
	return strings.Join([]string{i.Lead.Phone, string(i.Lead.Status), string(i.Lead.Source)}, " | ")
}

// LeadDelegate renders one lead per line as a fixed-width row.
type LeadDelegate struct{}

// Height returns the number of lines each item takes.
func (d LeadDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d LeadDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d LeadDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single lead row.
func (d LeadDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(LeadItem)
	if !ok {
		return
	}

	line := formatRow(li.Lead)
	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

// Column widths of the lead table.
const (
	colName    = 20
	colPhone   = 11
	colStatus  = 11
	colSource  = 13
	colCompany = 22
)

// headerRow renders the table heading aligned with formatRow.
func headerRow() string {
	return theme.DimmedStyle.Render(fmt.Sprintf("  %s %s %s %s %s %s",
		pad("NAME", colName),
		pad("PHONE", colPhone),
		pad("STATUS", colStatus),
		pad("SOURCE", colSource),
		pad("COMPANY", colCompany),
		"CREATED",
	))
}

func formatRow(l model.Lead) string {
	status := theme.StatusStyle(l.Status).
		Padding(0).
		Width(colStatus).
		Render(string(l.Status))
	source := theme.SourceStyle(l.Source).
		Width(colSource).
		Render(string(l.Source))
	created := theme.DimmedStyle.Render(l.CreatedAt.Local().Format("02 Jan 2006"))

	return fmt.Sprintf("%s %s %s %s %s %s",
		pad(l.Name, colName),
		pad(l.Phone, colPhone),
		status,
		source,
		pad(l.Company, colCompany),
		created,
	)
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	if lipgloss.Width(s) > width {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
			r = r[:len(r)-1]
		}
		return string(r) + "…"
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}
