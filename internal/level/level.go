package level

import "math"

// Level is a progression tier derived from total XP.
type Level string

const (
	LevelExplorer  Level = "explorer"
	LevelConnector Level = "connector"
	LevelMentor    Level = "mentor"
)

// AllLevels returns all levels in order from lowest to highest.
func AllLevels() []Level {
	return []Level{LevelExplorer, LevelConnector, LevelMentor}
}

// DisplayName returns a human-readable label for the level.
func (l Level) DisplayName() string {
	switch l {
	case LevelExplorer:
		return "Explorer"
	case LevelConnector:
		return "Connector"
	case LevelMentor:
		return "Mentor"
	default:
		return string(l)
	}
}

// Band is a half-open XP range [MinXP, NextXP). NextXP is 0 for the
// terminal band, which has no upper bound.
type Band struct {
	Level  Level
	MinXP  int
	NextXP int
}

// Terminal reports whether the band has no upper bound.
func (b Band) Terminal() bool {
	return b.NextXP == 0
}

var bands = []Band{
	{Level: LevelExplorer, MinXP: 0, NextXP: 300},
	{Level: LevelConnector, MinXP: 300, NextXP: 700},
	{Level: LevelMentor, MinXP: 700},
}

// Bands returns a copy of the band table, lowest first.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Info is the level projection of an XP total.
type Info struct {
	Level           Level `json:"level"`
	PreviousLevelXP int   `json:"previousLevelXp"`
	NextLevelXP     *int  `json:"nextLevelXp"`     // nil in the terminal band
	ProgressPercent int   `json:"progressPercent"` // 0-100 within the current band
}

// For maps an XP total to its level band. Negative XP is clamped to 0.
func For(xp int) Info {
	if xp < 0 {
		xp = 0
	}

	band := bands[0]
	for i := len(bands) - 1; i >= 0; i-- {
		if bands[i].MinXP <= xp {
			band = bands[i]
			break
		}
	}

	info := Info{
		Level:           band.Level,
		PreviousLevelXP: band.MinXP,
	}
	if band.Terminal() {
		info.ProgressPercent = 100
		return info
	}

	next := band.NextXP
	info.NextLevelXP = &next
	info.ProgressPercent = progress(xp, band.MinXP, band.NextXP)
	return info
}

// Rank returns the zero-based position of l in AllLevels, or -1.
func (l Level) Rank() int {
	for i, lv := range AllLevels() {
		if lv == l {
			return i
		}
	}
	return -1
}

func progress(xp, lo, hi int) int {
	pct := int(math.Round(100 * float64(xp-lo) / float64(hi-lo)))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
