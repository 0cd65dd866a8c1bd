package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juststeveking/uptimed/internal/targets"
)

var targetListCmd = &cobra.Command{
	Use:   "target:list",
	Short: "List all targets",
	Long:  `Display every URL in the target list, in the order they are probed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigOnly()
		if err != nil {
			return err
		}

		urls, err := targets.NewFile(cfg.TargetsPath).Load()
		if err != nil {
			return err
		}

		if len(urls) == 0 {
			fmt.Println("No targets configured yet.")
			fmt.Println("\nAdd a target with:")
			fmt.Println("  uptimed target:add <url>")
			return nil
		}

		fmt.Printf("Targets in %s (%d):\n\n", cfg.TargetsPath, len(urls))
		for i, u := range urls {
			if u == "" {
				u = "(empty line)"
			}
			fmt.Printf("  %2d. %s\n", i+1, u)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetListCmd)
}
