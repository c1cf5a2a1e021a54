package controller

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// theme styles markers for the writer's color profile; non-terminals get plain text.
type theme struct {
	pass    lipgloss.Style
	fail    lipgloss.Style
	warn    lipgloss.Style
	heading lipgloss.Style
	faint   lipgloss.Style
}

func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)

	return theme{
		pass:    r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		heading: r.NewStyle().Bold(true),
		faint:   r.NewStyle().Faint(true),
	}
}

func (t theme) resultLine(result m.TestResult) string {
	if result.Passed {
		return fmt.Sprintf("✅ %s - %s %s", result.Name, t.pass.Render("PASSED"), result.Details)
	}

	return fmt.Sprintf("❌ %s - %s %s", result.Name, t.fail.Render("FAILED"), result.Details)
}

func (t theme) sectionLine(title string) string {
	return "\n" + t.heading.Render(fmt.Sprintf("🔍 Testing %s...", title))
}

func (t theme) headerLines(baseURL string, startedAt time.Time) []string {
	return []string{
		t.heading.Render("🚀 Starting Skip Pagination Tests..."),
		fmt.Sprintf("📡 Backend URL: %s", baseURL),
		fmt.Sprintf("🕐 Test Started: %s", startedAt.Format(timestampLayout)),
	}
}

func (t theme) interruptedLine() string {
	return "\n" + t.warn.Render("⚠️ Tests interrupted by user")
}

func (t theme) runErrorLine(err error) string {
	return "\n" + t.fail.Render(fmt.Sprintf("❌ Unexpected error during testing: %v", err))
}

func (t theme) summaryLines(summary m.RunSummary) []string {
	lines := []string{
		"\n" + t.heading.Render("📊 Skip Pagination Test Results Summary:"),
		fmt.Sprintf("   Total Tests: %d", summary.Total),
		fmt.Sprintf("   Passed: %d", summary.Passed),
		fmt.Sprintf("   Failed: %d", summary.Failed),
	}

	if summary.Total == 0 {
		lines = append(lines, "   Success Rate: 0%")
	} else {
		lines = append(lines,
			fmt.Sprintf("   Success Rate: %.1f%%", summary.SuccessRate()),
			"   "+t.verdictStyle(summary.Verdict()).Render(summary.Verdict().Banner()),
		)
	}

	return append(lines, fmt.Sprintf("🕐 Test Completed: %s", summary.CompletedAt.Format(timestampLayout)))
}

func (t theme) verdictStyle(v m.Verdict) lipgloss.Style {
	switch v {
	case m.VerdictExcellent, m.VerdictGood:
		return t.pass
	case m.VerdictFair:
		return t.warn
	default:
		return t.fail
	}
}

func renderFailuresTable(failures []m.TestResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Failed Check", "Details"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColWidth(60)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, failure := range failures {
		table.Append([]string{failure.Name, failure.Details})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Failed %d", len(failures)), ""})
	table.Render()

	return tableBuffer.String()
}

func renderStepsTable(steps []m.StepInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Step", "Title", "Request"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoMergeCells(true)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	requests := 0

	for i, step := range steps {
		for _, request := range step.Requests {
			table.Append([]string{fmt.Sprintf("%d", i+1), step.Title, "GET " + request})

			requests++
		}
	}

	table.SetFooter([]string{fmt.Sprintf("Total Steps %d", len(steps)), "", fmt.Sprintf("%d requests", requests)})
	table.Render()

	return tableBuffer.String()
}
