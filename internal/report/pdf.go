package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Veraticus/aishield/pkg/logger"
)

// Document layout in points.
const (
	pdfMargin      = 54.0 // 0.75in
	pdfLeading     = 11.0
	pdfPageBuffer  = 120.0
	pdfMaxListItem = 6
	pdfFont        = "Helvetica"
)

// PDFGenerator renders a paginated audit document.
type PDFGenerator struct {
	logger logger.Logger
}

// NewPDFGenerator creates a PDF report generator.
func NewPDFGenerator(log logger.Logger) *PDFGenerator {
	return &PDFGenerator{logger: log}
}

// Name returns the format identifier.
func (g *PDFGenerator) Name() string {
	return "pdf"
}

// Description returns a human-readable description.
func (g *PDFGenerator) Description() string {
	return "Paginated PDF summary with top findings and recommendations"
}

// Generate writes the PDF document to outputPath.
func (g *PDFGenerator) Generate(report *AuditReport, outputPath string) error {
	doc := g.Render(report)
	if err := doc.Error(); err != nil {
		return fmt.Errorf("laying out PDF: %w", err)
	}

	err := writeFile(outputPath, func(w io.Writer) error {
		return doc.Output(w)
	})
	if err != nil {
		return err
	}

	g.logger.Info("Generated PDF report", "path", outputPath, "pages", doc.PageCount())
	return nil
}

// Render lays the report out without writing it anywhere.
func (g *PDFGenerator) Render(report *AuditReport) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle("AI Shield Security Audit Report", true)
	pdf.SetCreator("aishield", true)

	l := &pdfLayout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	_, l.height = pdf.GetPageSize()
	width, _ := pdf.GetPageSize()
	l.contentWidth = width - 2*pdfMargin

	pdf.AddPage()
	l.y = pdfMargin

	summary := report.Summary()
	l.text("B", 16, "AI Shield Security Audit Report")
	l.y += 16
	l.text("", 10, fmt.Sprintf("Generated: %s  |  Overall Score: %.2f  |  Overall Risk: %s",
		summary.ReportGenerated, summary.OverallScore, summary.OverallRisk))
	l.y += 24

	l.text("B", 12, "Environment")
	l.y += 14
	if env := report.UserEnvironment; env != nil {
		l.text("", 10, fmt.Sprintf("Platform: %s | Agent Mode: %t | Connectors: %s",
			env.Platform, env.AgentMode, env.ConnectorList()))
		l.y += 12
		l.text("", 10, fmt.Sprintf("Vector Store: %s | Sensitive Data: %s",
			env.VectorStoreName(), listOrNone(env.SensitiveDataTypes)))
	}
	l.y += 20

	for _, cat := range report.AuditCategories {
		l.breakIfLow()
		l.text("B", 12, fmt.Sprintf("%s — Score: %.2f | Risk: %s", cat.Category, cat.Score, cat.RiskLevel))
		l.y += 12

		findings := make([]string, 0, len(cat.Findings))
		for _, f := range cat.Findings {
			findings = append(findings, fmt.Sprintf("• (%s) %s", f.Severity, f.Text))
		}
		l.list("Key Findings:", findings)

		recs := make([]string, 0, len(cat.Recommendations))
		for _, r := range cat.Recommendations {
			recs = append(recs, fmt.Sprintf("• (%s) %s", r.Effort, r.Text))
		}
		l.list("Top Recommendations:", recs)
		l.y += 8
	}

	return pdf
}

// pdfLayout tracks the baseline of the next line, measured from the page top.
type pdfLayout struct {
	pdf          *fpdf.Fpdf
	tr           func(string) string
	y            float64
	height       float64
	contentWidth float64
}

func (l *pdfLayout) text(style string, size float64, s string) {
	l.pdf.SetFont(pdfFont, style, size)
	l.pdf.Text(pdfMargin, l.y, l.tr(s))
}

func (l *pdfLayout) list(heading string, items []string) {
	l.text("I", 9, heading)
	l.y += 12

	if len(items) == 0 {
		l.text("", 9, "• None recorded")
		l.y += 12
		return
	}
	if len(items) > pdfMaxListItem {
		items = items[:pdfMaxListItem]
	}

	l.pdf.SetFont(pdfFont, "", 9)
	for _, item := range items {
		for _, line := range wrapText(item, l.contentWidth, l.measure) {
			l.pdf.Text(pdfMargin, l.y, l.tr(line))
			l.y += pdfLeading
		}
		l.breakIfLow()
	}
}

func (l *pdfLayout) measure(s string) float64 {
	return l.pdf.GetStringWidth(l.tr(s))
}

// breakIfLow starts a new page once less than the buffer remains above the bottom margin.
func (l *pdfLayout) breakIfLow() {
	if l.height-l.y < pdfMargin+pdfPageBuffer {
		l.pdf.AddPage()
		l.y = pdfMargin
	}
}

// wrapText greedily packs words into lines narrower than maxWidth. A single word
// wider than maxWidth gets a line of its own.
func wrapText(text string, maxWidth float64, width func(string) float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		candidate := strings.TrimSpace(line + " " + word)
		if width(candidate) < maxWidth || line == "" {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
