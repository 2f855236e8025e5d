package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/preflight/preflight/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	okStyle       = lipgloss.NewStyle().Foreground(success)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	highTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	medTagStyle   = lipgloss.NewStyle().Foreground(warning).Bold(true)
	lowTagStyle   = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

var severityStyles = map[domain.Severity]lipgloss.Style{
	domain.SeverityHigh:   highTagStyle,
	domain.SeverityMedium: medTagStyle,
	domain.SeverityLow:    lowTagStyle,
}

// RenderReport renders an analysis report for the terminal.
func RenderReport(report *domain.AnalysisReport) string {
	var b strings.Builder

	title := headerStyle.Render("preflight")
	subtitle := dimStyle.Render("Deployment Readiness Report")
	stackLine := lipgloss.NewStyle().Bold(true).Foreground(fg).
		Render(string(report.Stack.Primary))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + stackLine))
	b.WriteString("\n\n")

	renderStack(&b, report.Stack)
	renderStructure(&b, report.Structure)
	renderConfiguration(&b, report.Configuration)

	b.WriteString("  " + separatorLine + "\n\n")
	renderIssues(&b, report.Issues)

	if len(report.Recommendations) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Recommendations") + "\n\n")
		for _, rec := range report.Recommendations {
			b.WriteString("  " + dimStyle.Render("•") + " " + rec + "\n")
		}
	}

	return b.String()
}

func renderStack(b *strings.Builder, stack domain.Stack) {
	if len(stack.Frameworks) > 0 {
		b.WriteString("  " + titleStyle.Render("Frameworks") + "  " +
			dimStyle.Render(strings.Join(stack.Frameworks, ", ")) + "\n")
	}
	if len(stack.Technologies) > 0 {
		b.WriteString("  " + titleStyle.Render("Technologies") + "  " +
			dimStyle.Render(strings.Join(stack.Technologies, ", ")) + "\n")
	}
	b.WriteString("\n")
}

func renderStructure(b *strings.Builder, s domain.Structure) {
	b.WriteString(fmt.Sprintf("  %s  %d files, %d directories\n",
		titleStyle.Render("Structure"), s.FileCount, s.DirCount))

	if len(s.FileTypes) > 0 {
		exts := make([]string, 0, len(s.FileTypes))
		for ext := range s.FileTypes {
			exts = append(exts, ext)
		}
		sort.Slice(exts, func(i, j int) bool {
			if s.FileTypes[exts[i]] != s.FileTypes[exts[j]] {
				return s.FileTypes[exts[i]] > s.FileTypes[exts[j]]
			}
			return exts[i] < exts[j]
		})
		if len(exts) > 6 {
			exts = exts[:6]
		}
		parts := make([]string, len(exts))
		for i, ext := range exts {
			parts[i] = fmt.Sprintf("%s ×%d", ext, s.FileTypes[ext])
		}
		b.WriteString("  " + faintStyle.Render(strings.Join(parts, "  ")) + "\n")
	}
	b.WriteString("\n")
}

func renderConfiguration(b *strings.Builder, cfg domain.Configuration) {
	if len(cfg.DatabaseHints) > 0 {
		names := make([]string, len(cfg.DatabaseHints))
		for i, db := range cfg.DatabaseHints {
			names[i] = string(db)
		}
		b.WriteString("  " + titleStyle.Render("Databases") + "  " +
			dimStyle.Render(strings.Join(names, ", ")) + "\n")
	}
	if len(cfg.PortHints) > 0 {
		ports := make([]string, len(cfg.PortHints))
		for i, p := range cfg.PortHints {
			ports[i] = fmt.Sprintf("%d", p)
		}
		b.WriteString("  " + titleStyle.Render("Ports") + "  " +
			dimStyle.Render(strings.Join(ports, ", ")) + "\n")
	}
	if len(cfg.DatabaseHints) > 0 || len(cfg.PortHints) > 0 {
		b.WriteString("\n")
	}
}

func renderIssues(b *strings.Builder, issues []domain.Issue) {
	if len(issues) == 0 {
		b.WriteString("  " + okStyle.Render("No deployment issues found.") + "\n")
		return
	}

	high, med, low := countSeverities(issues)
	b.WriteString("  " + titleStyle.Render("Issues") + "  ")
	if high > 0 {
		b.WriteString(highTagStyle.Render(fmt.Sprintf("%d high", high)) + "  ")
	}
	if med > 0 {
		b.WriteString(medTagStyle.Render(fmt.Sprintf("%d medium", med)) + "  ")
	}
	if low > 0 {
		b.WriteString(lowTagStyle.Render(fmt.Sprintf("%d low", low)))
	}
	b.WriteString("\n\n")

	for _, issue := range issues {
		tag := severityStyles[issue.Severity].Render(strings.ToUpper(string(issue.Severity)))
		b.WriteString(fmt.Sprintf("  %s  %s %s\n",
			tag, issue.Description, faintStyle.Render("("+string(issue.Kind)+")")))
	}
}

func countSeverities(issues []domain.Issue) (high, med, low int) {
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityHigh:
			high++
		case domain.SeverityMedium:
			med++
		case domain.SeverityLow:
			low++
		}
	}
	return high, med, low
}

// RenderLedger renders the outcome of a fix run.
func RenderLedger(ledger *domain.FixLedger) string {
	var b strings.Builder

	if ledger.Empty() {
		b.WriteString("  " + okStyle.Render("No fixes needed.") + "\n")
		return b.String()
	}

	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Applied %d fixes", len(ledger.Entries))) + "\n\n")
	for _, entry := range ledger.Entries {
		b.WriteString("  " + okStyle.Render("✓") + " " + entry + "\n")
	}
	return b.String()
}
