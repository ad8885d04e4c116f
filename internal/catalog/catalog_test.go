package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wayhome/internal/level"
	"github.com/abhisek/wayhome/internal/matching"
	"github.com/abhisek/wayhome/internal/progression"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultSeed(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)
	assert.Equal(t, 120, seed.XP)
	assert.NotEmpty(t, seed.PathwayNodes)
	assert.NotEmpty(t, seed.Tasks)

	state := progression.NewState(seed)
	assert.Equal(t, level.LevelExplorer, state.Level)
	assert.Equal(t, 40, state.ProgressPercent)

	node, ok := state.Node("meet-neighbours")
	require.True(t, ok)
	assert.Equal(t, progression.NodeUpNext, node.Status)
	assert.Equal(t, progression.AreaCommunity, node.Area)
}

func TestLoadSeed_EmptyPathUsesDefault(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	assert.Equal(t, 120, seed.XP)
}

func TestLoadSeed_File(t *testing.T) {
	path := writeFile(t, "seed.yaml", `
xp: 310
badges: [Helper]
pathway:
  - id: n1
    title: First
    area: community
tasks:
  - id: t1
    title: Task
    status: completed
`)
	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, 310, seed.XP)
	assert.Equal(t, []string{"Helper"}, seed.Badges)
	assert.Equal(t, progression.TaskCompleted, seed.Tasks[0].Status)
}

func TestLoadSeed_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "xpp: 3\n", "field xpp not found"},
		{"missing node id", "pathway:\n  - title: x\n    area: community\n", "pathway[0]: id is required"},
		{"duplicate node", "pathway:\n  - {id: a, area: community}\n  - {id: a, area: community}\n", `duplicate id "a"`},
		{"bad status", "pathway:\n  - {id: a, area: community, status: started}\n", `unknown status "started"`},
		{"bad area", "pathway:\n  - {id: a, area: sports}\n", `unknown area "sports"`},
		{"bad task status", "tasks:\n  - {id: t, status: doing}\n", `unknown status "doing"`},
		{"bad skill source", "skills:\n  - {id: s, source: tv}\n", `unknown source "tv"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeed(writeFile(t, "seed.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseSeed_Empty(t *testing.T) {
	seed, err := ParseSeed(nil)
	require.NoError(t, err)
	assert.Zero(t, seed.XP)
}

func TestLoadJobs(t *testing.T) {
	jobs, err := LoadJobs("testdata/jobs.yaml")
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "kitchen-assistant", jobs[0].ID)
	assert.Equal(t, []string{"cooking", "food hygiene"}, jobs[0].Requirement.RequiredSkills)
	assert.Equal(t, "A2", jobs[0].Requirement.LanguageLevel)
}

func TestLoadJobs_MissingID(t *testing.T) {
	_, err := LoadJobs(writeFile(t, "jobs.yaml", "jobs:\n  - title: Nameless\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile("testdata/profile.yaml")
	require.NoError(t, err)
	assert.Equal(t, "A2", p.LanguageLevel)
	require.Len(t, p.Skills, 3)
	assert.Equal(t, matching.SourceQualification, p.Skills[1].Source)
	assert.Equal(t, matching.ProficiencyAdvanced, p.Skills[0].Level)
}

func TestLoadProfile_BadLanguage(t *testing.T) {
	_, err := LoadProfile(writeFile(t, "profile.yaml", "languageLevel: D4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown language level "D4"`)
}

func TestFixtures_RankEndToEnd(t *testing.T) {
	jobs, err := LoadJobs("testdata/jobs.yaml")
	require.NoError(t, err)
	p, err := LoadProfile("testdata/profile.yaml")
	require.NoError(t, err)

	ranked := matching.Rank(p.Skills, jobs, p.LanguageLevel)
	require.Len(t, ranked, 3)
	assert.Equal(t, "kitchen-assistant", ranked[0].Job.ID)
	assert.Equal(t, 100, ranked[0].Result.MatchScore)
}

func TestLoadProfile_SkillErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"misspelled source", "skills:\n  - {skill: cooking, source: qualifcation}\n", `unknown source "qualifcation"`},
		{"missing source", "skills:\n  - {skill: cooking}\n", `skill "cooking": source is required`},
		{"missing skill", "skills:\n  - {source: course}\n", "skills[0]: skill is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfile(writeFile(t, "profile.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
