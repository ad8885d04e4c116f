package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wayhome/internal/ui/dashboard"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Render the seed snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		st, err := rt.openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		snap := st.Snapshot()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := writeJSON(cmd.OutOrStdout(), snap); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.RenderState(snap, termWidth))
		}
		return rt.exportMetrics(cmd)
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Print the state as JSON")
}
