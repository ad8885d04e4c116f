package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wayhome/internal/config"
	"github.com/abhisek/wayhome/internal/matching"
	"github.com/abhisek/wayhome/internal/metrics"
	"github.com/abhisek/wayhome/internal/progression"
)

// resetFlags restores every flag to its default so runs do not leak into
// each other through the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeStreams(t, stdin, args...)
	return out, err
}

func executeStreams(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--log-level", "error"))

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "wayhome (devel)\n", out)
}

func TestLevel(t *testing.T) {
	out, err := execute(t, "", "level", "699", "--json")
	require.NoError(t, err)

	var info struct {
		Level       string `json:"level"`
		NextLevelXP *int   `json:"nextLevelXp"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "connector", info.Level)
	require.NotNil(t, info.NextLevelXP)
	assert.Equal(t, 700, *info.NextLevelXP)

	out, err = execute(t, "", "level", "700")
	require.NoError(t, err)
	assert.Contains(t, out, "Mentor")
}

func TestLevel_BadInput(t *testing.T) {
	_, err := execute(t, "", "level", "lots")
	require.Error(t, err)
	_, err = execute(t, "", "level", "-5")
	require.Error(t, err)
}

func TestLevelList(t *testing.T) {
	out, err := execute(t, "", "level", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Explorer")
	assert.Contains(t, out, "Connector")
	assert.Contains(t, out, "Mentor")
}

func TestStatus_DefaultSeed(t *testing.T) {
	out, err := execute(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Your journey")
	assert.Contains(t, out, "Welcome Aboard")
}

func TestApply_FromStdin(t *testing.T) {
	seed := writeTemp(t, "seed.yaml", `
xp: 280
pathway:
  - id: meet
    title: Meet your neighbours
    area: community
`)
	events := strings.Join([]string{
		`{"id":"x","label":"Food bank shift","category":"volunteer","xp":30}`,
		`{"id":"x","label":"Food bank shift","category":"volunteer","xp":30}`,
		``,
		`{"id":"y","label":"Street party","category":"community","badgeLabel":"Neighbour"}`,
		`{"label":"no id","category":"community"}`,
		`not json`,
	}, "\n")

	out, err := execute(t, events, "apply", "--seed", seed, "--json")
	require.NoError(t, err)

	var state progression.State
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, 280+30+progression.DefaultXP, state.XP)
	assert.Equal(t, "connector", string(state.Level))
	assert.Equal(t, []string{"Neighbour"}, state.Wallet.Badges)
	assert.Len(t, state.Wallet.Transactions, 2)
	assert.Equal(t, progression.NodeInProgress, state.PathwayNodes[0].Status)
}

func TestApply_Strict(t *testing.T) {
	_, err := execute(t, `{"id":"a"}`, "apply", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 malformed event(s) rejected")
}

func TestApply_File(t *testing.T) {
	path := writeTemp(t, "events.jsonl", `{"id":"a","label":"Dutch lesson","category":"language","xp":15}`+"\n")
	out, err := execute(t, "", "apply", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Dutch lesson")
}

func TestApply_MissingFile(t *testing.T) {
	_, err := execute(t, "", "apply", filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
}

func TestApplyEvents_Summary(t *testing.T) {
	rt := &runtime{cfg: &config.Config{}, logger: zerolog.Nop(), metrics: metrics.New()}
	st := progression.NewStore(progression.NewState(progression.Seed{XP: 290}),
		progression.WithLogger(zerolog.Nop()),
		progression.WithRecorder(rt.metrics),
	)
	defer st.Close()

	in := strings.NewReader(strings.Join([]string{
		`{"id":"a","label":"one","category":"learning"}`,
		`{"id":"a","label":"one","category":"learning"}`,
		`{"id":"b","label":"two","category":"learning","xp":-1}`,
		`{"id":"c","label":"three","category":"learning","extra":true}`,
	}, "\n"))

	sum, err := rt.applyEvents(st, in)
	require.NoError(t, err)
	assert.Equal(t, applySummary{Applied: 1, Duplicates: 1, Rejected: 2, LevelUps: 1}, sum)
	assert.Equal(t, 2.0, testutil.ToFloat64(rt.metrics.EventsRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(rt.metrics.EventsDuplicate))
}

func TestMatch(t *testing.T) {
	jobs := writeTemp(t, "jobs.yaml", `
jobs:
  - id: chef
    title: Chef
    requirement:
      requiredSkills: [cooking]
      languageLevel: B1
  - id: driver
    title: Driver
    requirement:
      requiredSkills: [driving]
`)
	profile := writeTemp(t, "profile.yaml", `
languageLevel: A0
skills:
  - skill: cooking
    source: qualification
`)

	out, err := execute(t, "", "match", "--jobs", jobs, "--profile", profile, "--lang", "B1", "--json")
	require.NoError(t, err)

	var ranked []matching.Ranked
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "chef", ranked[0].Job.ID)
	assert.Equal(t, 100, ranked[0].Result.MatchScore)
	assert.Equal(t, []string{"driving"}, ranked[1].Result.MissingSkills)

	out, err = execute(t, "", "match", "--jobs", jobs, "--profile", profile, "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Chef")
	assert.NotContains(t, out, "Driver")
}

func TestMatch_RequiresJobs(t *testing.T) {
	t.Setenv("WAYHOME_JOBS", "")
	profile := writeTemp(t, "profile.yaml", "skills: []\n")
	_, err := execute(t, "", "match", "--profile", profile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no job catalog")
}

func TestApply_WritesMetricsFile(t *testing.T) {
	t.Setenv("WAYHOME_METRICS_FILE", "")
	path := filepath.Join(t.TempDir(), "metrics.prom")
	events := strings.Join([]string{
		`{"id":"a","label":"Food bank shift","category":"volunteer","xp":30}`,
		`{"id":"a","label":"Food bank shift","category":"volunteer","xp":30}`,
		`{"id":"b","label":"huge","category":"volunteer","xp":9223372036854775807}`,
	}, "\n")

	_, err := execute(t, events, "apply", "--json", "--metrics", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `wayhome_events_applied_total{category="volunteer"} 1`)
	assert.Contains(t, text, "wayhome_events_duplicate_total 1")
	assert.Contains(t, text, "wayhome_events_rejected_total 1")
	assert.Contains(t, text, "wayhome_xp 150")
}

func TestMatch_MetricsToStderr(t *testing.T) {
	jobs := writeTemp(t, "jobs.yaml", "jobs:\n  - id: chef\n    title: Chef\n    requirement:\n      requiredSkills: [cooking]\n")
	profile := writeTemp(t, "profile.yaml", "skills:\n  - {skill: cooking, source: course}\n")

	_, stderr, err := executeStreams(t, "", "match", "--jobs", jobs, "--profile", profile, "--metrics", "-")
	require.NoError(t, err)
	assert.Contains(t, stderr, "# TYPE wayhome_match_score histogram")
	assert.Contains(t, stderr, "wayhome_match_score_count 1")
}

func TestApply_NoMetricsByDefault(t *testing.T) {
	t.Setenv("WAYHOME_METRICS_FILE", "")
	_, stderr, err := executeStreams(t, `{"id":"a","label":"x","category":"learning"}`, "apply", "--json")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "wayhome_xp")
}
