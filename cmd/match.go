package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wayhome/internal/catalog"
	"github.com/abhisek/wayhome/internal/matching"
	"github.com/abhisek/wayhome/internal/ui/dashboard"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank a job catalog against a skill profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}

		jobsPath, _ := cmd.Flags().GetString("jobs")
		if jobsPath == "" {
			jobsPath = rt.cfg.JobsPath
		}
		if jobsPath == "" {
			return fmt.Errorf("no job catalog: pass --jobs or set WAYHOME_JOBS")
		}
		profilePath, _ := cmd.Flags().GetString("profile")

		jobs, err := catalog.LoadJobs(jobsPath)
		if err != nil {
			return err
		}
		profile, err := catalog.LoadProfile(profilePath)
		if err != nil {
			return err
		}
		lang := profile.LanguageLevel
		if l, _ := cmd.Flags().GetString("lang"); l != "" {
			if _, ok := matching.ParseLanguageLevel(l); !ok {
				return fmt.Errorf("unknown language level %q", l)
			}
			lang = l
		}

		ranked := matching.Rank(profile.Skills, jobs, lang)
		for _, r := range ranked {
			rt.metrics.RecordMatch(r.Result.MatchScore)
		}
		rt.logger.Debug().
			Int("jobs", len(jobs)).
			Int("ranked", len(ranked)).
			Str("language_level", lang).
			Msg("jobs ranked")

		if top, _ := cmd.Flags().GetInt("top"); top > 0 && len(ranked) > top {
			ranked = ranked[:top]
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := writeJSON(cmd.OutOrStdout(), ranked); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.RenderMatches(ranked))
		}
		return rt.exportMetrics(cmd)
	},
}

func init() {
	matchCmd.Flags().String("jobs", "", "Path to a YAML job catalog (overrides WAYHOME_JOBS)")
	matchCmd.Flags().String("profile", "", "Path to a YAML skill profile")
	matchCmd.Flags().String("lang", "", "Override the profile's language level (A0..C2)")
	matchCmd.Flags().Int("top", 0, "Show only the N best matches")
	matchCmd.Flags().Bool("json", false, "Print results as JSON")
	_ = matchCmd.MarkFlagRequired("profile")
}
