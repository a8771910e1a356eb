package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/aishield/internal/report"
)

// RenderSummary renders a finished report for the terminal.
func RenderSummary(r *report.AuditReport) string {
	s := r.Summary()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render("AI Shield Security Audit"))
	fmt.Fprintf(&b, "Overall score %s  risk %s\n",
		boldStyle.Render(fmt.Sprintf("%.2f", s.OverallScore)),
		riskStyle(string(s.OverallRisk)).Render(string(s.OverallRisk)))
	fmt.Fprintf(&b, "%s\n\n", grayStyle.Render("Generated "+s.ReportGenerated))

	nameWidth := 0
	for _, c := range r.AuditCategories {
		nameWidth = max(nameWidth, lipgloss.Width(c.Category))
	}

	for _, c := range r.AuditCategories {
		fmt.Fprintf(&b, "%-*s  %5.2f  %s\n", nameWidth, c.Category, c.Score,
			riskStyle(string(c.RiskLevel)).Render(string(c.RiskLevel)))
		for _, f := range c.Findings {
			fmt.Fprintf(&b, "  %s %s\n", riskStyle(string(f.Severity)).Render("•"), f.Text)
		}
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
