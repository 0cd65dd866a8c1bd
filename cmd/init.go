package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/juststeveking/uptimed/internal/config"
)

var (
	forceInit       bool
	interactiveInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize uptimed configuration",
	Long: `Create a new uptimed configuration file at ~/.config/uptimed/config.yml
(or at the path given with -c). With --interactive you are asked for the
target list and intervals instead of getting the commented example.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _, err := resolveConfigPath()
		if err != nil {
			return err
		}

		if interactiveInit {
			if err := interactiveConfig(path); err != nil {
				return err
			}
		} else if err := config.InitConfig(path, forceInit); err != nil {
			return err
		}

		if forceInit {
			fmt.Printf("✓ Configuration reset at %s\n", path)
		} else {
			fmt.Printf("✓ Configuration initialized at %s\n", path)
		}

		fmt.Println("\nEdit the config file and add URLs to your target list, then run:")
		fmt.Println("  uptimed")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite existing configuration")
	initCmd.Flags().BoolVarP(&interactiveInit, "interactive", "i", false, "answer a few questions instead of writing the example")
	rootCmd.AddCommand(initCmd)
}

// initAnswers holds the values collected by the interactive form
type initAnswers struct {
	TargetsPath     string
	RequestInterval string
	ScanInterval    string
	Desktop         bool
	SlackWebhook    string
}

func interactiveConfig(path string) error {
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	answers := &initAnswers{
		TargetsPath:     filepath.Join(filepath.Dir(path), "targets"),
		RequestInterval: config.DefaultRequestInterval,
		ScanInterval:    config.DefaultScanInterval,
		Desktop:         true,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target list").
				Description("File with one URL per line; created if missing").
				Value(&answers.TargetsPath),
			huh.NewInput().
				Title("Request interval").
				Description("Pause between two requests, e.g. 0s, 2s").
				Validate(validateDuration).
				Value(&answers.RequestInterval),
			huh.NewInput().
				Title("Scan interval").
				Description("Time between the start of two scans, e.g. 15m, 1h").
				Validate(validateDuration).
				Value(&answers.ScanInterval),
		).Title("Scanning"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Desktop notifications?").
				Value(&answers.Desktop),
			huh.NewInput().
				Title("Slack webhook (optional)").
				Value(&answers.SlackWebhook),
		).Title("Alerts"),
	).WithTheme(huh.ThemeCatppuccin()).WithWidth(80).WithShowHelp(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return err
	}

	cfg, err := answers.toConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(cfg.TargetsPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(cfg.TargetsPath, nil, 0644); err != nil {
			return fmt.Errorf("failed to create target list: %w", err)
		}
	}

	return config.SaveConfig(path, cfg)
}

func (a *initAnswers) toConfig() (*config.Config, error) {
	requestInterval, err := config.ParseDuration(a.RequestInterval)
	if err != nil {
		return nil, fmt.Errorf("request interval: %w", err)
	}
	scanInterval, err := config.ParseDuration(a.ScanInterval)
	if err != nil {
		return nil, fmt.Errorf("scan interval: %w", err)
	}
	if scanInterval <= requestInterval {
		return nil, errors.New("scan interval must be greater than request interval")
	}

	cfg := config.DefaultConfig()
	cfg.TargetsPath = a.TargetsPath
	cfg.RequestInterval = config.Duration(requestInterval)
	cfg.ScanInterval = config.Duration(scanInterval)
	cfg.Notifications.Desktop = a.Desktop
	cfg.Notifications.SlackWebhook = a.SlackWebhook
	return cfg, nil
}

func validateDuration(s string) error {
	_, err := config.ParseDuration(s)
	return err
}
