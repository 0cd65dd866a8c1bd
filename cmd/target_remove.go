package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juststeveking/uptimed/internal/targets"
)

var (
	forceRemove bool
)

var targetRemoveCmd = &cobra.Command{
	Use:   "target:remove <url>",
	Short: "Remove a URL from the target list",
	Long: `Remove a URL from the target list.

Example:
  uptimed target:remove https://api.example.com/health
  uptimed target:remove https://api.example.com/health --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		cfg, err := loadConfigOnly()
		if err != nil {
			return err
		}

		// Confirm removal unless --force is used
		if !forceRemove {
			fmt.Printf("Remove target '%s'? (y/N): ", target)
			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				return err
			}

			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := targets.NewFile(cfg.TargetsPath).Remove(target); err != nil {
			return err
		}

		fmt.Printf("✓ Removed target '%s' from %s\n", target, cfg.TargetsPath)
		return nil
	},
}

func init() {
	targetRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "skip confirmation prompt")
	rootCmd.AddCommand(targetRemoveCmd)
}
