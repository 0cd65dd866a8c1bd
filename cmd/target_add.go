package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/juststeveking/uptimed/internal/targets"
)

var targetAddCmd = &cobra.Command{
	Use:   "target:add <url>",
	Short: "Add a URL to the target list",
	Long: `Append a URL to the target list named in your configuration.

Example:
  uptimed target:add https://api.example.com/health`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if _, err := url.ParseRequestURI(target); err != nil {
			return fmt.Errorf("invalid URL '%s': %w", target, err)
		}

		cfg, err := loadConfigOnly()
		if err != nil {
			return err
		}

		if err := targets.NewFile(cfg.TargetsPath).Add(target); err != nil {
			return err
		}

		fmt.Printf("✓ Added target '%s' to %s\n", target, cfg.TargetsPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetAddCmd)
}
