package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vinayk98/mini-crm/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value). Which
// half is used follows Apply.
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Apply switches every adaptive color to the named theme. Unknown names
// select the dark theme.
func Apply(name string) {
	lipgloss.SetHasDarkBackground(name != model.ThemeLight)
}

// Toggle returns the other theme name.
func Toggle(name string) string {
	if name == model.ThemeLight {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for rows in the lead table.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the focused row.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders secondary text such as timestamps and completed
// follow-ups.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// ErrorStyle renders failure messages.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// TitleStyle is used for panel titles.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// ActiveTabStyle and InactiveTabStyle render the detail view tabs.
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue).
			Underline(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Padding(0, 1)
)

// StatusStyle returns the badge style for a lead status.
func StatusStyle(status model.LeadStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case model.StatusNew:
		return base.Foreground(ColorBlue)
	case model.StatusContacted:
		return base.Foreground(ColorYellow)
	case model.StatusQualified:
		return base.Foreground(ColorGreen)
	case model.StatusLost:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// SourceStyle returns the label style for a lead source.
func SourceStyle(source model.LeadSource) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch source {
	case model.SourceWebsite:
		return base.Foreground(ColorBlue)
	case model.SourceReferral:
		return base.Foreground(ColorGreen)
	case model.SourceSocialMedia:
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}

// FollowUpStyle returns the style for a follow-up row.
func FollowUpStyle(status string) lipgloss.Style {
	if status == model.FollowUpCompleted {
		return DimmedStyle.Strikethrough(true)
	}
	return lipgloss.NewStyle().Foreground(ColorYellow)
}
