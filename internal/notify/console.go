package notify

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorUnhealthy = lipgloss.Color("#FF0055") // Neon Red
	colorMuted     = lipgloss.Color("#565f89") // Muted Blue

	downStyle = lipgloss.NewStyle().
			Foreground(colorUnhealthy).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Console prints alerts to a terminal or log stream
type Console struct {
	out io.Writer
	now func() time.Time
}

// NewConsole creates a console sink writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, now: time.Now}
}

// Notify writes one styled line. A failed write is returned to the caller.
func (c *Console) Notify(ctx context.Context, target, reason string) error {
	line := fmt.Sprintf("%s %s %s\n",
		timeStyle.Render(c.now().Format("15:04:05")),
		downStyle.Render("✗ "+Title(target)),
		Body(reason))

	if _, err := io.WriteString(c.out, line); err != nil {
		return fmt.Errorf("failed to write alert: %w", err)
	}
	return nil
}
