package theme

import (
	"reflect"
	"testing"

	"github.com/abhisek/wayhome/internal/level"
)

func TestLevelColor(t *testing.T) {
	want := map[level.Level]any{
		level.LevelExplorer:  Explorer,
		level.LevelConnector: Connector,
		level.LevelMentor:    Mentor,
		level.Level("guru"):  Primary,
	}
	for l, c := range want {
		if got := LevelColor(l).GetForeground(); !reflect.DeepEqual(got, c) {
			t.Errorf("LevelColor(%q) foreground = %v, want %v", l, got, c)
		}
	}
}

func TestLevelColor_CoversAllLevels(t *testing.T) {
	for _, l := range level.AllLevels() {
		if reflect.DeepEqual(LevelColor(l).GetForeground(), Primary) {
			t.Errorf("level %q falls back to the default color", l)
		}
	}
}
