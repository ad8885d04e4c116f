package matching

import "strings"

// LanguageLevel is a CEFR level, ordered A0 < A1 < ... < C2.
type LanguageLevel int

const (
	LanguageA0 LanguageLevel = iota
	LanguageA1
	LanguageA2
	LanguageB1
	LanguageB2
	LanguageC1
	LanguageC2
)

var languageNames = [...]string{"A0", "A1", "A2", "B1", "B2", "C1", "C2"}

func (l LanguageLevel) String() string {
	if l < LanguageA0 || l > LanguageC2 {
		return "unknown"
	}
	return languageNames[l]
}

// ParseLanguageLevel parses a CEFR label such as "b1". Surrounding space
// and case are ignored.
func ParseLanguageLevel(s string) (LanguageLevel, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range languageNames {
		if s == name {
			return LanguageLevel(i), true
		}
	}
	return LanguageA0, false
}

// languageScore returns the language component and whether the user falls
// short of the job's level. An unset or unknown job level is no requirement;
// an unset or unknown user level counts as A0.
func languageScore(jobLevel, userLevel string) (int, bool) {
	want, ok := ParseLanguageLevel(jobLevel)
	if !ok {
		return 100, false
	}
	have, _ := ParseLanguageLevel(userLevel)
	if have >= want {
		return 100, false
	}
	gap := int(want - have)
	return max(0, 100-20*gap), true
}
