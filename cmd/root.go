package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/wayhome/internal/catalog"
	"github.com/abhisek/wayhome/internal/config"
	"github.com/abhisek/wayhome/internal/logging"
	"github.com/abhisek/wayhome/internal/metrics"
	"github.com/abhisek/wayhome/internal/progression"
)

// termWidth is the width dashboards are laid out for.
const termWidth = 80

var rootCmd = &cobra.Command{
	Use:           "wayhome",
	Short:         "Onboarding progression for newcomers",
	Long:          "Wayhome tracks the contributions of newly arrived residents as XP, badges and pathway milestones, and matches their skills to jobs.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("seed", "", "Path to a YAML seed snapshot (overrides WAYHOME_SEED)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides WAYHOME_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("metrics", "", `Write Prometheus text metrics to this file after the command, "-" for stderr (overrides WAYHOME_METRICS_FILE)`)

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(versionCmd)
}

// runtime bundles what every subcommand needs.
type runtime struct {
	cfg     *config.Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// newRuntime loads config from the environment, applies flag overrides,
// and builds the logger and collectors.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("seed"); p != "" {
		cfg.SeedPath = p
	}
	if p, _ := cmd.Flags().GetString("metrics"); p != "" {
		cfg.MetricsFile = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger := logging.NewWithWriter(cfg, cmd.ErrOrStderr())
	return &runtime{cfg: cfg, logger: logger, metrics: metrics.New()}, nil
}

// openStore boots a store from the configured seed snapshot.
func (rt *runtime) openStore() (*progression.Store, error) {
	seed, err := catalog.LoadSeed(rt.cfg.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return progression.NewStore(progression.NewState(seed),
		progression.WithLogger(rt.logger),
		progression.WithRecorder(rt.metrics),
	), nil
}

// exportMetrics writes the collected metrics when a destination is
// configured.
func (rt *runtime) exportMetrics(cmd *cobra.Command) error {
	switch rt.cfg.MetricsFile {
	case "":
		return nil
	case "-":
		return rt.metrics.WriteText(cmd.ErrOrStderr())
	}

	f, err := os.Create(rt.cfg.MetricsFile)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	if err := rt.metrics.WriteText(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close metrics file: %w", err)
	}
	rt.logger.Debug().Str("path", rt.cfg.MetricsFile).Msg("metrics written")
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
