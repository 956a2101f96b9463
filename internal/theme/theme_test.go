package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/vinayk98/mini-crm/internal/model"
)

func TestToggle(t *testing.T) {
	assert.Equal(t, model.ThemeLight, Toggle(model.ThemeDark))
	assert.Equal(t, model.ThemeDark, Toggle(model.ThemeLight))
	assert.Equal(t, model.ThemeLight, Toggle(""))
}

func TestApply(t *testing.T) {
	Apply(model.ThemeLight)
	assert.False(t, lipgloss.HasDarkBackground())

	Apply(model.ThemeDark)
	assert.True(t, lipgloss.HasDarkBackground())
}

func TestStatusStyleDistinguishesStatuses(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range model.LeadStatuses {
		fg := StatusStyle(s).GetForeground()
		c, ok := fg.(lipgloss.AdaptiveColor)
		assert.True(t, ok)
		seen[c.Dark] = true
	}
	assert.Len(t, seen, len(model.LeadStatuses))
}
