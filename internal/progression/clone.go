package progression

import "time"

// Clone returns a deep copy of s. Slices and maps are never shared between
// the copy and the original; nil collections stay nil.
func (s State) Clone() State {
	out := s
	out.NextLevelXP = cloneIntPtr(s.NextLevelXP)

	out.Wallet.Badges = cloneSlice(s.Wallet.Badges)
	out.Wallet.Transactions = cloneSlice(s.Wallet.Transactions)

	if s.Wallet.Tasks != nil {
		out.Wallet.Tasks = make([]Task, len(s.Wallet.Tasks))
		for i, t := range s.Wallet.Tasks {
			t.CompletedAt = cloneTimePtr(t.CompletedAt)
			out.Wallet.Tasks[i] = t
		}
	}

	out.SkillEntries = cloneSlice(s.SkillEntries)
	out.PathwayNodes = cloneSlice(s.PathwayNodes)

	if s.Reminders != nil {
		out.Reminders = make([]Reminder, len(s.Reminders))
		for i, r := range s.Reminders {
			r.DueAt = cloneTimePtr(r.DueAt)
			out.Reminders[i] = r
		}
	}

	if s.ActionHistory != nil {
		out.ActionHistory = make(map[string]AppliedEvent, len(s.ActionHistory))
		for id, a := range s.ActionHistory {
			out.ActionHistory[id] = a
		}
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
