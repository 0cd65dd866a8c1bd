package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/juststeveking/uptimed/internal/monitor"
)

// Model renders a single scan as it progresses
type Model struct {
	source   string
	outcomes []monitor.Outcome
	spinner  spinner.Model
	width    int
	done     bool
	quitting bool
	report   monitor.Report
	err      error
}

// OutcomeMsg carries one classified target into the program
type OutcomeMsg monitor.Outcome

// ScanDoneMsg is sent once RunScan returns
type ScanDoneMsg struct {
	Report monitor.Report
	Err    error
}

// NewModel creates a model for a scan of the targets in source
func NewModel(source string) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(colorChecking)

	return Model{
		source:  source,
		spinner: s,
	}
}

// Init starts the spinner
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Err returns the scan error once the program has finished
func (m Model) Err() error {
	return m.err
}

// Done reports whether the scan finished before the program exited
func (m Model) Done() bool {
	return m.done
}

// Report returns the scan summary
func (m Model) Report() monitor.Report {
	return m.report
}
