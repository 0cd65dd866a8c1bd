package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juststeveking/uptimed/internal/config"
	"github.com/juststeveking/uptimed/internal/monitor"
	"github.com/juststeveking/uptimed/internal/notify"
	"github.com/juststeveking/uptimed/internal/targets"
	"github.com/juststeveking/uptimed/internal/tui"
)

var (
	plainCheck bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single scan now and exit",
	Long: `Probe every target once, show the results, and exit. Alerts are sent the
same way the monitor sends them. The exit status is non-zero when the
target list cannot be read, an alert cannot be delivered, or the live view
is closed before the scan finishes.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadValidConfig(cmd)
		if err != nil {
			if errors.Is(err, errFirstRun) {
				return nil
			}
			return err
		}

		prober := monitor.NewHTTPProber()
		defer prober.Close()

		interactive := !plainCheck && isatty.IsTerminal(os.Stdout.Fd())

		// The live view already lists failures; console alerts would garble it
		notifications := cfg.Notifications
		if interactive {
			notifications.Console = false
		}

		runner := monitor.NewRunner(
			targets.NewFile(cfg.TargetsPath),
			prober,
			notify.FromConfig(notifications, cmd.OutOrStdout()),
			cfg.CustomHeaders,
			cfg.RequestPause(),
			zap.NewNop(),
		)

		if !interactive {
			return runPlainCheck(cmd, runner)
		}
		return runInteractiveCheck(cfg, runner)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&plainCheck, "plain", false, "print results line by line instead of the live view")
	rootCmd.AddCommand(checkCmd)
}

func runPlainCheck(cmd *cobra.Command, runner *monitor.Runner) error {
	out := cmd.OutOrStdout()
	runner.Observer = func(o monitor.Outcome) {
		fmt.Fprintln(out, tui.RenderOutcome(o))
	}

	report, err := runner.RunScan(context.Background())
	fmt.Fprintln(out, tui.RenderSummary(report, err))
	return err
}

func runInteractiveCheck(cfg *config.Config, runner *monitor.Runner) error {
	p := tea.NewProgram(tui.NewModel(cfg.TargetsPath))

	runner.Observer = func(o monitor.Outcome) {
		p.Send(tui.OutcomeMsg(o))
	}
	go func() {
		report, err := runner.RunScan(context.Background())
		p.Send(tui.ScanDoneMsg{Report: report, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	return scanResult(final)
}

// errScanInterrupted is returned when the live view is closed before the scan ends
var errScanInterrupted = errors.New("scan interrupted")

func scanResult(final tea.Model) error {
	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if !m.Done() {
		return errScanInterrupted
	}
	return m.Err()
}
