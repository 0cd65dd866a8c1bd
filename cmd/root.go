package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juststeveking/uptimed/internal/config"
	"github.com/juststeveking/uptimed/internal/logging"
	"github.com/juststeveking/uptimed/internal/monitor"
	"github.com/juststeveking/uptimed/internal/notify"
	"github.com/juststeveking/uptimed/internal/targets"
)

var (
	configPath string
)

// errFirstRun stops the command after the setup notice has been printed
var errFirstRun = errors.New("first run")

var rootCmd = &cobra.Command{
	Use:   "uptimed",
	Short: "Watch a list of URLs and alert when one goes down",
	Long: `uptimed probes every URL in your target list on a fixed cadence and raises a
desktop (or console, or Slack) alert whenever a target answers with an error status
or cannot be reached.

Targets are re-read at the start of every scan, so edits to the list take effect
on the next pass.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadValidConfig(cmd)
		if err != nil {
			if errors.Is(err, errFirstRun) {
				return nil
			}
			return err
		}

		logger, err := logging.NewLogger(logging.Options{Level: cfg.Log.Level, Dir: cfg.Log.Dir})
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		prober := monitor.NewHTTPProber()
		defer prober.Close()

		runner := monitor.NewRunner(
			targets.NewFile(cfg.TargetsPath),
			prober,
			notify.FromConfig(cfg.Notifications, cmd.OutOrStdout()),
			cfg.CustomHeaders,
			cfg.RequestPause(),
			logger,
		)

		// Handle OS signals
		shutdown := monitor.NewShutdown()
		stop := shutdown.WatchSignals(logger, os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("uptimed_started",
			zap.String("config", configPath),
			zap.String("targets", cfg.TargetsPath),
			zap.String("scan_interval", cfg.ScanInterval.String()),
			zap.String("request_interval", cfg.RequestInterval.String()))

		scheduler := monitor.NewScheduler(runner, cfg.ScanEvery(), shutdown, logger)
		if err := scheduler.Run(context.Background()); err != nil {
			return fmt.Errorf("monitor stopped: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/uptimed/config.yml)")
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfigPath returns the --config value or the default location.
// explicit reports whether the user asked for that path.
func resolveConfigPath() (path string, explicit bool, err error) {
	if configPath != "" {
		return configPath, true, nil
	}

	path, err = config.GetConfigPath()
	if err != nil {
		return "", false, err
	}
	return path, false, nil
}

// loadValidConfig loads and validates the config, printing the setup notice on first run
func loadValidConfig(cmd *cobra.Command) (*config.Config, error) {
	path, explicit, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		if explicit {
			return nil, fmt.Errorf("configuration file does not exist: %s", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("could not create config directory: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "A configuration file is needed for uptimed to work.\n\n")
		fmt.Fprintf(out, "Pass one with -c, run 'uptimed init', or create %s\n\n", path)
		fmt.Fprintf(out, "Here's an example configuration:\n")
		fmt.Fprintln(out, "-----------------------------------------------------------")
		fmt.Fprint(out, config.ExampleConfig)
		return nil, errFirstRun
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configPath = path
	return cfg, nil
}
