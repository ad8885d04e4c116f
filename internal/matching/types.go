package matching

// Proficiency is a self-assessed skill level. The engine does not weigh it;
// it travels with the skill for display.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Source records where a user skill came from.
type Source string

const (
	SourceQualification  Source = "qualification"
	SourceVolunteering   Source = "volunteering"
	SourceCourse         Source = "course"
	SourceWorkExperience Source = "work-experience"
	SourceCommunity      Source = "community"
	SourceSelfReported   Source = "self-reported"
)

// AllSources returns every known skill source.
func AllSources() []Source {
	return []Source{
		SourceQualification,
		SourceVolunteering,
		SourceCourse,
		SourceWorkExperience,
		SourceCommunity,
		SourceSelfReported,
	}
}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	for _, known := range AllSources() {
		if s == known {
			return true
		}
	}
	return false
}

// UserSkill is one entry of a user's skill profile.
type UserSkill struct {
	Skill    string      `json:"skill" yaml:"skill"`
	ESCOCode string      `json:"escoCode,omitempty" yaml:"escoCode,omitempty"`
	Level    Proficiency `json:"level,omitempty" yaml:"level,omitempty"`
	Source   Source      `json:"source" yaml:"source"`
}

// JobRequirement describes what a job asks for.
type JobRequirement struct {
	RequiredSkills  []string `json:"requiredSkills" yaml:"requiredSkills"`
	PreferredSkills []string `json:"preferredSkills,omitempty" yaml:"preferredSkills,omitempty"`
	LanguageLevel   string   `json:"languageLevel,omitempty" yaml:"languageLevel,omitempty"`
	Qualifications  []string `json:"qualifications,omitempty" yaml:"qualifications,omitempty"`
}

// Job is a listing that can be ranked against a profile.
type Job struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Employer    string         `json:"employer,omitempty" yaml:"employer,omitempty"`
	Requirement JobRequirement `json:"requirement" yaml:"requirement"`
}

// Breakdown holds the weighted components of a match score.
type Breakdown struct {
	SkillsMatch        int    `json:"skillsMatch"`
	LanguageMatch      int    `json:"languageMatch"`
	QualificationMatch int    `json:"qualificationMatch"`
	Explanation        string `json:"explanation"`
}

// MatchResult is the outcome of scoring one profile against one job.
type MatchResult struct {
	MatchScore           int       `json:"matchScore"`
	MatchedSkills        []string  `json:"matchedSkills"`
	MissingSkills        []string  `json:"missingSkills"`
	MissingLanguageLevel bool      `json:"missingLanguageLevel"`
	Breakdown            Breakdown `json:"breakdown"`
}
