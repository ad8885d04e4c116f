package progression

import (
	"time"

	"github.com/abhisek/wayhome/internal/level"
)

// Category classifies a contribution event. The reducer branches on it.
type Category string

const (
	CategoryVolunteer      Category = "volunteer"
	CategoryCommunity      Category = "community"
	CategoryLearning       Category = "learning"
	CategoryLanguage       Category = "language"
	CategoryEmployment     Category = "employment"
	CategoryAdministration Category = "administration"
	CategoryWellbeing      Category = "wellbeing"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryVolunteer,
		CategoryCommunity,
		CategoryLearning,
		CategoryLanguage,
		CategoryEmployment,
		CategoryAdministration,
		CategoryWellbeing,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// SkillSource records where a skill entry came from.
type SkillSource string

const (
	SourceVolunteering   SkillSource = "volunteering"
	SourceCourse         SkillSource = "course"
	SourceQualification  SkillSource = "qualification"
	SourceWorkExperience SkillSource = "work-experience"
	SourceCommunity      SkillSource = "community"
	SourceSelfReported   SkillSource = "self-reported"
)

// AllSkillSources returns all skill sources.
func AllSkillSources() []SkillSource {
	return []SkillSource{
		SourceVolunteering,
		SourceCourse,
		SourceQualification,
		SourceWorkExperience,
		SourceCommunity,
		SourceSelfReported,
	}
}

// Valid reports whether s is one of the known sources.
func (s SkillSource) Valid() bool {
	for _, known := range AllSkillSources() {
		if s == known {
			return true
		}
	}
	return false
}

// TransactionType tags a wallet transaction.
type TransactionType string

const (
	TransactionTask   TransactionType = "task"
	TransactionBadge  TransactionType = "badge"
	TransactionAction TransactionType = "action"
)

// NodeStatus is a pathway node's position. Transitions only move forward.
type NodeStatus string

const (
	NodeUpNext     NodeStatus = "up-next"
	NodeInProgress NodeStatus = "in-progress"
	NodeDone       NodeStatus = "done"
)

// rank orders statuses so transitions can be checked as "forward only".
func (s NodeStatus) rank() int {
	switch s {
	case NodeUpNext:
		return 0
	case NodeInProgress:
		return 1
	case NodeDone:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is a known status.
func (s NodeStatus) Valid() bool { return s.rank() >= 0 }

// Area groups pathway nodes and tasks by onboarding theme.
type Area string

const (
	AreaLanguage       Area = "language"
	AreaEmployment     Area = "employment"
	AreaCommunity      Area = "community"
	AreaAdministration Area = "administration"
)

// Valid reports whether a is a known area.
func (a Area) Valid() bool {
	switch a {
	case AreaLanguage, AreaEmployment, AreaCommunity, AreaAdministration:
		return true
	}
	return false
}

// TaskStatus is the completion state of a wallet task.
type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskCompleted TaskStatus = "completed"
)

// SkillDraft is the skill payload carried by an event.
type SkillDraft struct {
	ID       string      `json:"id" yaml:"id"`
	Title    string      `json:"title" yaml:"title"`
	Category string      `json:"category,omitempty" yaml:"category,omitempty"`
	Source   SkillSource `json:"source,omitempty" yaml:"source,omitempty"`
	Details  string      `json:"details,omitempty" yaml:"details,omitempty"`
	EarnedAt *time.Time  `json:"earnedAt,omitempty" yaml:"earnedAt,omitempty"`
}

// ReminderDraft is the reminder payload carried by an event.
type ReminderDraft struct {
	Title string     `json:"title" yaml:"title"`
	DueAt *time.Time `json:"dueAt,omitempty" yaml:"dueAt,omitempty"`
	Note  string     `json:"note,omitempty" yaml:"note,omitempty"`
}

// Event is a contribution event. ID is the idempotency key.
type Event struct {
	ID            string         `json:"id" yaml:"id"`
	Label         string         `json:"label" yaml:"label"`
	Category      Category       `json:"category" yaml:"category"`
	XP            *int           `json:"xp,omitempty" yaml:"xp,omitempty"`
	ImpactPoints  *int           `json:"impactPoints,omitempty" yaml:"impactPoints,omitempty"`
	ImpactHours   *float64       `json:"impactHours,omitempty" yaml:"impactHours,omitempty"`
	BadgeLabel    string         `json:"badgeLabel,omitempty" yaml:"badgeLabel,omitempty"`
	Skill         *SkillDraft    `json:"skill,omitempty" yaml:"skill,omitempty"`
	PathwayNodeID string         `json:"pathwayNodeId,omitempty" yaml:"pathwayNodeId,omitempty"`
	Reminder      *ReminderDraft `json:"reminder,omitempty" yaml:"reminder,omitempty"`
	TaskID        string         `json:"taskId,omitempty" yaml:"taskId,omitempty"`
}

// SkillEntry is a skill the user has earned.
type SkillEntry struct {
	ID       string      `json:"id" yaml:"id"`
	Title    string      `json:"title" yaml:"title"`
	Category string      `json:"category,omitempty" yaml:"category,omitempty"`
	EarnedAt time.Time   `json:"earnedAt" yaml:"earnedAt"`
	Source   SkillSource `json:"source" yaml:"source"`
	Details  string      `json:"details,omitempty" yaml:"details,omitempty"`
}

// PathwayNode is one milestone in the user's onboarding checklist.
type PathwayNode struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      NodeStatus `json:"status" yaml:"status"`
	XPReward    int        `json:"xpReward" yaml:"xpReward"`
	Area        Area       `json:"area" yaml:"area"`
}

// Reminder is a scheduled nudge created by an event.
type Reminder struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Note      string     `json:"note,omitempty" yaml:"note,omitempty"`
	DueAt     *time.Time `json:"dueAt,omitempty" yaml:"dueAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
}

// Task is a wallet task that an event can complete.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Area        Area       `json:"area,omitempty" yaml:"area,omitempty"`
	XPReward    int        `json:"xpReward" yaml:"xpReward"`
	Status      TaskStatus `json:"status" yaml:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// Transaction is one wallet ledger line.
type Transaction struct {
	ID        string          `json:"id"`
	EventID   string          `json:"eventId"`
	Label     string          `json:"label"`
	Type      TransactionType `json:"type"`
	Category  Category        `json:"category"`
	XP        int             `json:"xp"`
	Points    int             `json:"points"`
	Hours     float64         `json:"hours"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Wallet holds the secondary ledger metrics.
type Wallet struct {
	Points       int           `json:"points"`
	Hours        float64       `json:"hours"`
	Badges       []string      `json:"badges"`       // set semantics, first-award order
	Transactions []Transaction `json:"transactions"` // newest first, capped at MaxTransactions
	Tasks        []Task        `json:"tasks"`
}

// HasBadge reports whether label has already been awarded.
func (w *Wallet) HasBadge(label string) bool {
	for _, b := range w.Badges {
		if b == label {
			return true
		}
	}
	return false
}

// AppliedEvent is the idempotency ledger's summary of an applied event.
type AppliedEvent struct {
	EventID         string          `json:"eventId"`
	Label           string          `json:"label"`
	Category        Category        `json:"category"`
	XP              int             `json:"xp"`
	ImpactPoints    int             `json:"impactPoints"`
	ImpactHours     float64         `json:"impactHours"`
	TransactionType TransactionType `json:"transactionType"`
	AppliedAt       time.Time       `json:"appliedAt"`
}

// State is the whole progression snapshot. Level fields are derived from
// XP and refreshed on every transition.
type State struct {
	SeedXP          int                     `json:"seedXp"`
	XP              int                     `json:"xp"`
	Level           level.Level             `json:"level"`
	ProgressPercent int                     `json:"progressPercent"`
	PreviousLevelXP int                     `json:"previousLevelXp"`
	NextLevelXP     *int                    `json:"nextLevelXp"`
	Wallet          Wallet                  `json:"wallet"`
	SkillEntries    []SkillEntry            `json:"skillEntries"`
	PathwayNodes    []PathwayNode           `json:"pathwayNodes"`
	Reminders       []Reminder              `json:"reminders"`
	ActionHistory   map[string]AppliedEvent `json:"actionHistory"`

	// Revision counts applied events. Subscribers can drop any snapshot
	// whose revision is not newer than the last one they rendered.
	Revision uint64 `json:"revision"`
}

// LedgerXP returns the seed plus every XP contribution recorded in the
// action history. It always equals XP for states built by Apply.
func (s State) LedgerXP() int {
	total := s.SeedXP
	for _, a := range s.ActionHistory {
		total += a.XP
	}
	return total
}

// Seen reports whether an event id is already in the action history.
func (s State) Seen(eventID string) bool {
	_, ok := s.ActionHistory[eventID]
	return ok
}

// LevelInfo recomputes the level projection from XP.
func (s State) LevelInfo() level.Info {
	return level.For(s.XP)
}

// Node returns the pathway node with the given id.
func (s State) Node(id string) (PathwayNode, bool) {
	for _, n := range s.PathwayNodes {
		if n.ID == id {
			return n, true
		}
	}
	return PathwayNode{}, false
}

// Task returns the wallet task with the given id.
func (s State) Task(id string) (Task, bool) {
	for _, t := range s.Wallet.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Outcome describes what a single Apply call changed.
type Outcome struct {
	EventID        string
	Duplicate      bool
	XPGained       int
	PreviousLevel  level.Level
	Level          level.Level
	LevelUp        bool
	BadgeAwarded   string // empty if no new badge
	SkillUpserted  string
	NodesCompleted []string
	NodesStarted   []string
	TaskCompleted  string
	ReminderID     string
	Transaction    *Transaction
}
