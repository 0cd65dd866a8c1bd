package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/juststeveking/uptimed/internal/monitor"
)

var (
	colorAccent    = lipgloss.Color("#04D9FF") // Neon Cyan
	colorHealthy   = lipgloss.Color("#00FF94") // Neon Green
	colorUnhealthy = lipgloss.Color("#FF0055") // Neon Red
	colorChecking  = lipgloss.Color("#FFD700") // Gold
	colorMuted     = lipgloss.Color("#565f89") // Muted Blue
	colorSubtle    = lipgloss.Color("#24283b") // Dark Blue

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	healthyStyle = lipgloss.NewStyle().
			Foreground(colorHealthy).
			Bold(true)

	unhealthyStyle = lipgloss.NewStyle().
			Foreground(colorUnhealthy).
			Bold(true)

	metadataStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorUnhealthy)
)

// View renders the scan so far
func (m Model) View() string {
	if m.quitting && !m.done {
		return metadataStyle.Render("Scan interrupted.") + "\n"
	}

	width := m.width
	if width < 40 {
		width = 80
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("UPTIMED"))
	b.WriteString(metadataStyle.Render("  " + m.source))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(colorSubtle).Render(strings.Repeat("━", width)))
	b.WriteString("\n")

	for _, o := range m.outcomes {
		b.WriteString(RenderOutcome(o))
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), metadataStyle.Render("Probing...")))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(RenderSummary(m.report, m.err))
	b.WriteString("\n")
	return b.String()
}

// RenderOutcome formats one probe result as a single line
func RenderOutcome(o monitor.Outcome) string {
	target := o.URL
	if target == "" {
		target = "(empty line)"
	}

	if o.OK() {
		return fmt.Sprintf("%s %s %s",
			healthyStyle.Render("✓"),
			target,
			metadataStyle.Render(fmt.Sprintf("HTTP %d · %dms", o.StatusCode, o.ResponseTime.Milliseconds())))
	}

	detail := o.Reason()
	if o.Err != nil {
		detail = fmt.Sprintf("%s (%v)", detail, o.Err)
	}
	return fmt.Sprintf("%s %s %s",
		unhealthyStyle.Render("✗"),
		target,
		errorStyle.Render(detail))
}

// RenderSummary formats the end-of-scan line
func RenderSummary(r monitor.Report, err error) string {
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("Scan failed after %d of %d targets: %v", r.Probed, r.Targets, err))
	}

	healthy := r.Probed - r.Failed
	line := fmt.Sprintf("%s  %s  %s",
		healthyStyle.Render(fmt.Sprintf("● %d up", healthy)),
		unhealthyStyle.Render(fmt.Sprintf("● %d down", r.Failed)),
		metadataStyle.Render(fmt.Sprintf("in %s", r.Finished.Sub(r.Started).Round(time.Millisecond))))
	return line
}
