package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wayhome/internal/progression"
)

func TestNew_RegistersCollectors(t *testing.T) {
	m := New()
	m.EventApplied(progression.CategoryCommunity)
	m.RecordMatch(70)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"wayhome_events_applied_total",
		"wayhome_events_duplicate_total",
		"wayhome_events_rejected_total",
		"wayhome_xp",
		"wayhome_match_score",
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestMetrics_WiredIntoStore(t *testing.T) {
	m := New()
	st := progression.NewStore(
		progression.NewState(progression.Seed{XP: 10}),
		progression.WithLogger(zerolog.Nop()),
		progression.WithClock(func() time.Time { return time.Unix(0, 0) }),
		progression.WithRecorder(m),
	)
	defer st.Close()

	xp := 40
	e := progression.Event{ID: "e1", Label: "Meetup", Category: progression.CategoryCommunity, XP: &xp}
	_, err := st.Apply(e)
	require.NoError(t, err)
	_, err = st.Apply(e)
	require.NoError(t, err)
	_, err = st.Apply(progression.Event{ID: "e2"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsApplied.WithLabelValues("community")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDuplicate))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsRejected))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.XPTotal))
}

func TestRecordMatch(t *testing.T) {
	m := New()
	m.RecordMatch(22)
	m.RecordMatch(100)
	assert.Equal(t, 1, testutil.CollectAndCount(m.MatchScore))
}

func TestWriteText(t *testing.T) {
	m := New()
	m.EventApplied(progression.CategoryVolunteer)
	m.XP(340)
	m.RecordMatch(82)

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE wayhome_events_applied_total counter")
	assert.Contains(t, out, `wayhome_events_applied_total{category="volunteer"} 1`)
	assert.Contains(t, out, "wayhome_xp 340")
	assert.Contains(t, out, "wayhome_match_score_count 1")
}
