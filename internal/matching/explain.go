package matching

import (
	"fmt"
	"strings"
)

// maxListedMissing caps how many missing skills the explanation names.
const maxListedMissing = 3

// Band labels a match score for people.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandPartial   Band = "partial"
	BandLimited   Band = "limited"
)

// BandFor returns the band for a 0-100 score.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandPartial
	default:
		return BandLimited
	}
}

func explain(res MatchResult, jobLevel, userLevel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s match (%d/100).", capitalize(string(BandFor(res.MatchScore))), res.MatchScore)

	if n := len(res.MissingSkills); n > 0 {
		listed := res.MissingSkills[:min(n, maxListedMissing)]
		fmt.Fprintf(&b, " Missing skills: %s", strings.Join(listed, ", "))
		if n > maxListedMissing {
			fmt.Fprintf(&b, " and %d more", n-maxListedMissing)
		}
		b.WriteString(".")
	}

	if res.MissingLanguageLevel {
		want, _ := ParseLanguageLevel(jobLevel)
		have, _ := ParseLanguageLevel(userLevel)
		fmt.Fprintf(&b, " Language level %s is required; current level is %s.", want, have)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
