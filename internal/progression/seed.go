package progression

// Seed is the initial snapshot a store is booted with.
type Seed struct {
	XP           int           `yaml:"xp"`
	Points       int           `yaml:"points"`
	Hours        float64       `yaml:"hours"`
	Badges       []string      `yaml:"badges"`
	Skills       []SkillEntry  `yaml:"skills"`
	PathwayNodes []PathwayNode `yaml:"pathway"`
	Tasks        []Task        `yaml:"tasks"`
}

// NewState builds a consistent initial State from a seed. Negative totals
// are clamped to 0, badges are deduplicated, and blank statuses default to
// up-next / open.
func NewState(seed Seed) State {
	s := State{
		SeedXP:        max(seed.XP, 0),
		ActionHistory: make(map[string]AppliedEvent),
	}
	s.XP = s.SeedXP
	s.Wallet.Points = max(seed.Points, 0)
	s.Wallet.Hours = max(seed.Hours, 0)

	for _, b := range seed.Badges {
		if b != "" && !s.Wallet.HasBadge(b) {
			s.Wallet.Badges = append(s.Wallet.Badges, b)
		}
	}

	s.SkillEntries = dedupeSkills(seed.Skills)

	s.PathwayNodes = make([]PathwayNode, len(seed.PathwayNodes))
	for i, n := range seed.PathwayNodes {
		if n.Status == "" {
			n.Status = NodeUpNext
		}
		s.PathwayNodes[i] = n
	}

	s.Wallet.Tasks = make([]Task, len(seed.Tasks))
	for i, t := range seed.Tasks {
		if t.Status == "" {
			t.Status = TaskOpen
		}
		t.CompletedAt = cloneTimePtr(t.CompletedAt)
		s.Wallet.Tasks[i] = t
	}

	refreshLevel(&s)
	return s
}

// dedupeSkills keeps the last entry for each skill id, in first-seen order.
func dedupeSkills(in []SkillEntry) []SkillEntry {
	var out []SkillEntry
	index := make(map[string]int, len(in))
	for _, e := range in {
		if i, ok := index[e.ID]; ok {
			out[i] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	return out
}
