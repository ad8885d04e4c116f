package matching

import "sort"

// Ranked pairs a job with its match result.
type Ranked struct {
	Job    Job         `json:"job"`
	Result MatchResult `json:"result"`
}

// Rank scores every job against the profile, drops zero scores, and orders
// the rest by descending score. Ties keep input order.
func Rank(userSkills []UserSkill, jobs []Job, userLanguageLevel string) []Ranked {
	out := make([]Ranked, 0, len(jobs))
	for _, j := range jobs {
		res := Score(userSkills, j.Requirement, userLanguageLevel)
		if res.MatchScore == 0 {
			continue
		}
		out = append(out, Ranked{Job: j, Result: res})
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Result.MatchScore > out[k].Result.MatchScore
	})
	return out
}
