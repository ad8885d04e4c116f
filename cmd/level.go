package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/wayhome/internal/level"
	"github.com/abhisek/wayhome/internal/ui/dashboard"
)

var levelCmd = &cobra.Command{
	Use:   "level <xp>",
	Short: "Print the level band for an XP total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		xp, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("xp must be an integer: %w", err)
		}
		if xp < 0 {
			return fmt.Errorf("xp must not be negative, got %d", xp)
		}

		info := level.For(xp)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), info)
		}
		fmt.Fprintln(cmd.OutOrStdout(), dashboard.RenderLevel(xp, info, termWidth-6))
		return nil
	},
}

var levelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all level bands",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-12s  %8s  %8s\n", "Level", "From XP", "To XP")
		for _, b := range level.Bands() {
			next := "-"
			if !b.Terminal() {
				next = strconv.Itoa(b.NextXP)
			}
			fmt.Fprintf(w, "%-12s  %8d  %8s\n", b.Level.DisplayName(), b.MinXP, next)
		}
	},
}

func init() {
	levelCmd.Flags().Bool("json", false, "Print the level info as JSON")
	levelCmd.AddCommand(levelListCmd)
}
