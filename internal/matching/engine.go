// Package matching scores how well a skill profile fits a job.
//
// Matching is deliberately loose: a user skill satisfies a job skill when the
// lowercased names are equal, when either contains the other, or when the job
// skill equals the user's ESCO code. Score is pure and safe for concurrent use.
package matching

import (
	"math"
	"strings"
)

// Component weights.
const (
	weightSkills        = 0.6
	weightLanguage      = 0.3
	weightQualification = 0.1

	weightRequired  = 70
	weightPreferred = 30

	// qualificationPartial is awarded when a job lists qualifications and
	// none of the user's qualification skills overlap them.
	qualificationPartial = 50
)

// Score rates userSkills against job. userLanguageLevel is a CEFR label;
// anything unparseable counts as A0. Score never fails: empty inputs fall
// back to permissive defaults.
func Score(userSkills []UserSkill, job JobRequirement, userLanguageLevel string) MatchResult {
	matchedRequired, missing := partition(userSkills, job.RequiredSkills)
	matchedPreferred, _ := partition(userSkills, job.PreferredSkills)

	requiredRatio := 1.0
	if n := countNonBlank(job.RequiredSkills); n > 0 {
		requiredRatio = float64(len(matchedRequired)) / float64(n)
	}

	var skills int
	if countNonBlank(job.PreferredSkills) == 0 {
		skills = round(100 * requiredRatio)
	} else {
		preferredRatio := float64(len(matchedPreferred)) / float64(countNonBlank(job.PreferredSkills))
		skills = round(weightRequired*requiredRatio + weightPreferred*preferredRatio)
	}

	lang, langGap := languageScore(job.LanguageLevel, userLanguageLevel)
	qual := qualificationScore(userSkills, job.Qualifications)

	total := round(weightSkills*float64(skills) + weightLanguage*float64(lang) + weightQualification*float64(qual))
	total = min(max(total, 0), 100)

	res := MatchResult{
		MatchScore:           total,
		MatchedSkills:        dedupe(append(matchedRequired, matchedPreferred...)),
		MissingSkills:        missing,
		MissingLanguageLevel: langGap,
		Breakdown: Breakdown{
			SkillsMatch:        skills,
			LanguageMatch:      lang,
			QualificationMatch: qual,
		},
	}
	res.Breakdown.Explanation = explain(res, job.LanguageLevel, userLanguageLevel)
	return res
}

// partition splits job skills into those some user skill satisfies and
// those none does, preserving job order. Blank job skills are skipped and
// repeated ones are reported once.
func partition(userSkills []UserSkill, jobSkills []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	seen := make(map[string]bool, len(jobSkills))
	for _, js := range jobSkills {
		key := normalize(js)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if satisfied(userSkills, key) {
			matched = append(matched, js)
		} else {
			missing = append(missing, js)
		}
	}
	return matched, missing
}

func satisfied(userSkills []UserSkill, jobSkill string) bool {
	for _, us := range userSkills {
		if overlaps(normalize(us.Skill), jobSkill) {
			return true
		}
		if code := normalize(us.ESCOCode); code != "" && code == jobSkill {
			return true
		}
	}
	return false
}

func qualificationScore(userSkills []UserSkill, qualifications []string) int {
	if countNonBlank(qualifications) == 0 {
		return 100
	}
	for _, us := range userSkills {
		if us.Source != SourceQualification {
			continue
		}
		have := normalize(us.Skill)
		for _, q := range qualifications {
			if overlaps(have, normalize(q)) {
				return 100
			}
		}
	}
	return qualificationPartial
}

// overlaps reports an exact or substring match in either direction. Empty
// strings never overlap.
func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func countNonBlank(skills []string) int {
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		if k := normalize(s); k != "" {
			seen[k] = true
		}
	}
	return len(seen)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		k := normalize(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

func round(f float64) int {
	return int(math.Round(f))
}
