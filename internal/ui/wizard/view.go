package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/aishield/internal/models"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")). // Cyan
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // Red
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")) // Yellow
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))  // Green

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	grayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boldStyle     = lipgloss.NewStyle().Bold(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if len(m.items) == 0 {
		return "No questions to answer.\n"
	}
	if m.done {
		return titleStyle.Render(fmt.Sprintf("✓ All %d questions answered", len(m.items))) + "\n"
	}

	item := m.items[m.cursor]
	header := titleStyle.Render("🛡  AI Shield Audit") + "  " +
		grayStyle.Render(fmt.Sprintf("Question %d of %d", m.cursor+1, len(m.items)))

	var b strings.Builder
	b.WriteString(boldStyle.Render(item.Section))
	b.WriteString("\n\n")
	b.WriteString(m.wrap(item.Prompt))
	b.WriteString("\n\n")
	for i, c := range m.choices {
		if i == m.choice {
			b.WriteString(selectedStyle.Render("▸ " + string(c)))
		} else {
			b.WriteString("  " + string(c))
		}
		b.WriteString("\n")
	}

	help := grayStyle.Render("↑/↓ select • enter confirm • y/n/u answer • b back • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, boxStyle.Render(strings.TrimRight(b.String(), "\n")), help)
}

func (m Model) wrap(s string) string {
	if m.width <= 10 {
		return s
	}
	return lipgloss.NewStyle().Width(m.width - 6).Render(s)
}

// riskStyle colors a risk or severity label.
func riskStyle(level string) lipgloss.Style {
	switch level {
	case string(models.RiskHigh):
		return highStyle
	case string(models.RiskMedium):
		return mediumStyle
	default:
		return lowStyle
	}
}
