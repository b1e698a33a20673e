package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetID names one of the two transaction sets being reconciled against each
// other, e.g. a bank export (Set A) and a ledger export (Set B).
type SetID string

const (
	SetA SetID = "A"
	SetB SetID = "B"
)

// ParseSetID normalizes user-supplied set names ("a", "B", ...).
func ParseSetID(s string) (SetID, error) {
	switch s {
	case "A", "a":
		return SetA, nil
	case "B", "b":
		return SetB, nil
	}
	return "", ErrUnknownSet
}

// Other returns the opposite set.
func (s SetID) Other() SetID {
	if s == SetA {
		return SetB
	}
	return SetA
}

// Tolerances are fixed epsilons to absorb floating-point-adjacent sums, not
// policy knobs. The automatic tolerance is one order of magnitude tighter
// than the manual one because that path involves no human judgment call.
var (
	// ManualTolerance bounds the absolute difference a manually selected
	// group may carry and still be confirmable without forcing.
	ManualTolerance = decimal.RequireFromString("0.02")

	// AutoAmountTolerance bounds the per-pair amount difference accepted by
	// the automatic matching heuristic.
	AutoAmountTolerance = decimal.RequireFromString("0.01")
)

// AutoDateWindowDays is the maximum calendar-day distance between two entries
// the automatic heuristic will pair.
const AutoDateWindowDays = 7

// Transaction is a single posted financial line item. The id is assigned at
// ingestion time and stable for the session. The amount sign convention comes
// from the source: a signed amount column directly, or debit − credit.
type Transaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference,omitempty"`
	Counterparty  string          `json:"counterparty,omitempty"`
	LedgerAccount string          `json:"ledger_account,omitempty"`
	Journal       string          `json:"journal,omitempty"`
	Matched       bool            `json:"matched"`
	MatchID       string          `json:"match_id,omitempty"`
}

// MatchSource records which path created a match group. Automatic matches
// land in the same history as manual ones and are otherwise equivalent.
type MatchSource string

const (
	MatchSourceManual MatchSource = "manual"
	MatchSourceAuto   MatchSource = "auto"
)

// MatchGroup is a confirmed reconciliation result: one or more Set A entries
// associated with one or more Set B entries whose amounts net to
// (approximately) zero. Immutable once recorded.
type MatchGroup struct {
	ID        string        `json:"id"`
	MembersA  []Transaction `json:"members_a"`
	MembersB  []Transaction `json:"members_b"`
	Forced    bool          `json:"forced"`
	Source    MatchSource   `json:"source"`
	CreatedAt time.Time     `json:"created_at"`
}

// Difference returns sum(MembersA.Amount) − sum(MembersB.Amount).
func (g *MatchGroup) Difference() decimal.Decimal {
	return SumAmounts(g.MembersA).Sub(SumAmounts(g.MembersB))
}

// Balanced reports whether the group difference is within ManualTolerance.
func (g *MatchGroup) Balanced() bool {
	return g.Difference().Abs().LessThan(ManualTolerance)
}

// SumAmounts totals the amounts of the given transactions.
func SumAmounts(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// DaysBetween returns the absolute distance in calendar days between two
// dates. Time-of-day is ignored; both values are truncated to their UTC day.
func DaysBetween(a, b time.Time) int {
	da := truncateToDay(a)
	db := truncateToDay(b)
	diff := da.Sub(db)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
