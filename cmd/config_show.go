package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/juststeveking/uptimed/internal/config"
)

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Width(18)

var configShowCmd = &cobra.Command{
	Use:   "config:show",
	Short: "Show the effective configuration",
	Long:  `Display the loaded configuration with durations in canonical form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigOnly()
		if err != nil {
			return err
		}

		fmt.Printf("Config: %s\n", configPath)
		fmt.Println("─────────────────────────────────────")
		fmt.Println(labelStyle.Render("Targets") + cfg.TargetsPath)
		fmt.Println(labelStyle.Render("Request interval") + cfg.RequestInterval.String())
		fmt.Println(labelStyle.Render("Scan interval") + cfg.ScanInterval.String())
		fmt.Println(labelStyle.Render("Desktop alerts") + onOff(cfg.Notifications.Desktop))
		fmt.Println(labelStyle.Render("Console alerts") + onOff(cfg.Notifications.Console))
		fmt.Println(labelStyle.Render("Slack alerts") + onOff(cfg.Notifications.SlackWebhook != ""))

		if len(cfg.CustomHeaders) > 0 {
			fmt.Println("\nHeaders:")
			for _, h := range cfg.CustomHeaders {
				fmt.Printf("  %s: %s\n", h.Name, h.Value)
			}
		}

		if err := cfg.Validate(); err != nil {
			fmt.Printf("\n✗ %v\n", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configShowCmd)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// loadConfigOnly loads the config without validating it
func loadConfigOnly() (*config.Config, error) {
	path, _, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'uptimed init' to create one)", err)
	}

	configPath = path
	return cfg, nil
}
