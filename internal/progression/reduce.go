package progression

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wayhome/internal/level"
)

// transactionNamespace seeds the UUIDv5 ids of wallet transactions, so the
// same event always yields the same transaction id.
var transactionNamespace = uuid.MustParse("6f1c2a8e-3d4b-5e6f-8a9b-0c1d2e3f4a5b")

// TransactionID returns the deterministic transaction id for an event.
func TransactionID(eventID string) string {
	return uuid.NewSHA1(transactionNamespace, []byte(eventID)).String()
}

// Apply folds one contribution event into state and returns the new state.
// The input state is never modified. Malformed events return the input
// state with a *ValidationError; an event whose id is already in the action
// history returns the input state unchanged with Outcome.Duplicate set.
func Apply(state State, e Event, now time.Time) (State, Outcome, error) {
	if err := Validate(e); err != nil {
		return state, Outcome{EventID: e.ID}, err
	}

	current := level.For(state.XP).Level
	if state.Seen(e.ID) {
		return state, Outcome{
			EventID:       e.ID,
			Duplicate:     true,
			PreviousLevel: current,
			Level:         current,
		}, nil
	}

	now = now.UTC()
	next := state.Clone()
	if next.ActionHistory == nil {
		next.ActionHistory = make(map[string]AppliedEvent)
	}

	xpGain := ResolveXP(e)
	points := ResolveImpactPoints(e, xpGain)
	hours := ResolveImpactHours(e)
	txType := TransactionTypeFor(e)

	next.Revision = state.Revision + 1
	next.XP = addSaturating(next.XP, xpGain)
	next.Wallet.Points = addSaturating(next.Wallet.Points, points)
	next.Wallet.Hours += hours
	refreshLevel(&next)

	out := Outcome{
		EventID:       e.ID,
		XPGained:      xpGain,
		PreviousLevel: current,
		Level:         next.Level,
		LevelUp:       next.Level.Rank() > current.Rank(),
	}

	tx := Transaction{
		ID:        TransactionID(e.ID),
		EventID:   e.ID,
		Label:     e.Label,
		Type:      txType,
		Category:  e.Category,
		XP:        xpGain,
		Points:    points,
		Hours:     hours,
		CreatedAt: now,
	}
	next.Wallet.Transactions = pushTransaction(next.Wallet.Transactions, tx)
	out.Transaction = &tx

	if e.BadgeLabel != "" && !next.Wallet.HasBadge(e.BadgeLabel) {
		next.Wallet.Badges = append(next.Wallet.Badges, e.BadgeLabel)
		out.BadgeAwarded = e.BadgeLabel
	}

	if e.Skill != nil {
		upsertSkill(&next, e, now)
		out.SkillUpserted = e.Skill.ID
	}

	out.NodesCompleted, out.NodesStarted = advancePathway(next.PathwayNodes, e)

	if e.Reminder != nil {
		next.Reminders = append(next.Reminders, Reminder{
			ID:        e.ID,
			Title:     e.Reminder.Title,
			Note:      e.Reminder.Note,
			DueAt:     cloneTimePtr(e.Reminder.DueAt),
			CreatedAt: now,
		})
		out.ReminderID = e.ID
	}

	if e.TaskID != "" && completeTask(next.Wallet.Tasks, e.TaskID, now) {
		out.TaskCompleted = e.TaskID
	}

	next.ActionHistory[e.ID] = AppliedEvent{
		EventID:         e.ID,
		Label:           e.Label,
		Category:        e.Category,
		XP:              xpGain,
		ImpactPoints:    points,
		ImpactHours:     hours,
		TransactionType: txType,
		AppliedAt:       now,
	}

	return next, out, nil
}

// refreshLevel recomputes every XP-derived field.
func refreshLevel(s *State) {
	info := level.For(s.XP)
	s.Level = info.Level
	s.ProgressPercent = info.ProgressPercent
	s.PreviousLevelXP = info.PreviousLevelXP
	s.NextLevelXP = info.NextLevelXP
}

// pushTransaction prepends tx and evicts the oldest entries past the cap.
func pushTransaction(txs []Transaction, tx Transaction) []Transaction {
	out := make([]Transaction, 0, min(len(txs)+1, MaxTransactions))
	out = append(out, tx)
	for _, t := range txs {
		if len(out) == MaxTransactions {
			break
		}
		out = append(out, t)
	}
	return out
}

func upsertSkill(s *State, e Event, now time.Time) {
	draft := e.Skill
	earnedAt := now
	if draft.EarnedAt != nil {
		earnedAt = draft.EarnedAt.UTC()
	}

	for i := range s.SkillEntries {
		if s.SkillEntries[i].ID == draft.ID {
			s.SkillEntries[i].EarnedAt = earnedAt
			s.SkillEntries[i].Details = draft.Details
			return
		}
	}

	source := draft.Source
	if source == "" {
		source = sourceForCategory(e.Category)
	}
	category := draft.Category
	if category == "" {
		category = string(e.Category)
	}
	s.SkillEntries = append(s.SkillEntries, SkillEntry{
		ID:       draft.ID,
		Title:    draft.Title,
		Category: category,
		EarnedAt: earnedAt,
		Source:   source,
		Details:  draft.Details,
	})
}

func sourceForCategory(c Category) SkillSource {
	switch c {
	case CategoryVolunteer:
		return SourceVolunteering
	case CategoryCommunity:
		return SourceCommunity
	case CategoryLearning, CategoryLanguage:
		return SourceCourse
	case CategoryEmployment:
		return SourceWorkExperience
	default:
		return SourceSelfReported
	}
}

// advancePathway completes the referenced node and, for community events,
// starts the first up-next community node. Nodes never move backwards.
// An unknown node id is ignored.
func advancePathway(nodes []PathwayNode, e Event) (completed, started []string) {
	if e.PathwayNodeID != "" {
		for i := range nodes {
			if nodes[i].ID == e.PathwayNodeID && moveNode(&nodes[i], NodeDone) {
				completed = append(completed, nodes[i].ID)
			}
		}
	}

	// Any community event nudges the community track forward.
	if e.Category == CategoryCommunity {
		for i := range nodes {
			n := &nodes[i]
			if n.Area != AreaCommunity || n.Status != NodeUpNext || n.ID == e.PathwayNodeID {
				continue
			}
			if moveNode(n, NodeInProgress) {
				started = append(started, n.ID)
			}
			break
		}
	}
	return completed, started
}

// moveNode advances n to status if that is a forward transition.
func moveNode(n *PathwayNode, status NodeStatus) bool {
	if status.rank() <= n.Status.rank() {
		return false
	}
	n.Status = status
	return true
}

// completeTask marks the task completed. Completed tasks stay completed and
// keep their original timestamp.
func completeTask(tasks []Task, id string, now time.Time) bool {
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if tasks[i].Status == TaskCompleted {
			return false
		}
		t := now
		tasks[i].Status = TaskCompleted
		tasks[i].CompletedAt = &t
		return true
	}
	return false
}
