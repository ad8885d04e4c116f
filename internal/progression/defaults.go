package progression

import "math"

// DefaultXP is the flat reward for an event that does not carry an XP value.
const DefaultXP = 25

// Per-event reward caps. Larger values are rejected as malformed.
const (
	MaxEventXP           = 100_000
	MaxEventImpactPoints = 100_000
	MaxEventImpactHours  = 24 * 365
)

// MaxTransactions caps the wallet transaction history.
const MaxTransactions = 50

// ResolveXP returns the event's XP, or DefaultXP when unspecified.
func ResolveXP(e Event) int {
	if e.XP != nil {
		return *e.XP
	}
	return DefaultXP
}

// ResolveImpactPoints returns the event's impact points, falling back to
// the resolved XP gain.
func ResolveImpactPoints(e Event, xpGain int) int {
	if e.ImpactPoints != nil {
		return *e.ImpactPoints
	}
	return xpGain
}

// ResolveImpactHours returns the event's impact hours, or 0.
func ResolveImpactHours(e Event) float64 {
	if e.ImpactHours != nil {
		return *e.ImpactHours
	}
	return 0
}

// TransactionTypeFor tags the transaction an event produces. A task
// reference wins over a badge.
func TransactionTypeFor(e Event) TransactionType {
	switch {
	case e.TaskID != "":
		return TransactionTask
	case e.BadgeLabel != "":
		return TransactionBadge
	default:
		return TransactionAction
	}
}

// addSaturating adds a non-negative gain to total without wrapping past
// math.MaxInt.
func addSaturating(total, gain int) int {
	if gain > 0 && total > math.MaxInt-gain {
		return math.MaxInt
	}
	return total + gain
}
