package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wayhome/internal/progression"
	"github.com/abhisek/wayhome/internal/ui/dashboard"
)

// maxEventLine bounds a single JSON-lines record.
const maxEventLine = 1 << 20

var applyCmd = &cobra.Command{
	Use:   "apply [file]",
	Short: "Apply JSON-lines contribution events to the seed snapshot",
	Long: "Reads one contribution event per line from a file, or stdin when no file is given, " +
		"applies each to the seed snapshot and prints the resulting dashboard. " +
		"Re-delivered events are absorbed; malformed lines are reported and skipped.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}

		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open events: %w", err)
			}
			defer f.Close()
			in = f
		}

		st, err := rt.openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sum, err := rt.applyEvents(st, in)
		if err != nil {
			return err
		}
		rt.logger.Info().
			Int("applied", sum.Applied).
			Int("duplicates", sum.Duplicates).
			Int("rejected", sum.Rejected).
			Int("level_ups", sum.LevelUps).
			Msg("events processed")

		snap := st.Snapshot()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := writeJSON(cmd.OutOrStdout(), snap); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.RenderState(snap, termWidth))
		}

		if err := rt.exportMetrics(cmd); err != nil {
			return err
		}
		if strict, _ := cmd.Flags().GetBool("strict"); strict && sum.Rejected > 0 {
			return fmt.Errorf("%d malformed event(s) rejected", sum.Rejected)
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().Bool("json", false, "Print the resulting state as JSON")
	applyCmd.Flags().Bool("strict", false, "Exit non-zero when any event is rejected")
}

// applySummary counts what happened to each input line.
type applySummary struct {
	Applied    int
	Duplicates int
	Rejected   int
	LevelUps   int
}

// applyEvents decodes JSON lines from r and applies them in order. Blank
// lines are skipped. Malformed lines are counted, not fatal; only read
// errors stop the loop.
func (rt *runtime) applyEvents(st *progression.Store, r io.Reader) (applySummary, error) {
	var sum applySummary
	lineNo := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventLine)
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		e, err := progression.DecodeEvent(line)
		if err != nil {
			// Never reaches the store, so record it here.
			rt.logger.Warn().Err(err).Int("line", lineNo).Msg("event rejected")
			rt.metrics.EventRejected()
			sum.Rejected++
			continue
		}

		_, out, err := st.ApplyOutcome(e)
		switch {
		case err != nil:
			sum.Rejected++
		case out.Duplicate:
			sum.Duplicates++
		default:
			sum.Applied++
			if out.LevelUp {
				sum.LevelUps++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("read events: %w", err)
	}
	return sum, nil
}
