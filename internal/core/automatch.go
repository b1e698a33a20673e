package core

import "github.com/shopspring/decimal"

// MatchPair is a tentative 1:1 pairing produced by one auto-match pass.
type MatchPair struct {
	A Transaction `json:"a"`
	B Transaction `json:"b"`
}

// AutoMatchOutcome is the result of one heuristic pass. The caller applies it
// to the store; the function itself mutates nothing.
type AutoMatchOutcome struct {
	Pairs      []MatchPair
	RemainingA []Transaction
	RemainingB []Transaction
}

// AutoMatch proposes 1:1 matches between the two unmatched pools in a single
// greedy, order-sensitive pass: for each Set A entry in order, the first
// unclaimed Set B entry with an amount within amountTol and a date within
// dateWindowDays calendar days wins. No globally optimal assignment is
// attempted; closeness among several candidates is not compared. One
// invocation performs exactly one pass — a second invocation over the
// leftovers may find more, since claiming shrinks the search space.
func AutoMatch(unmatchedA, unmatchedB []Transaction, amountTol decimal.Decimal, dateWindowDays int) AutoMatchOutcome {
	var outcome AutoMatchOutcome
	claimedB := make([]bool, len(unmatchedB))

	for _, a := range unmatchedA {
		matched := false
		for j, b := range unmatchedB {
			if claimedB[j] {
				continue
			}
			if a.Amount.Sub(b.Amount).Abs().GreaterThanOrEqual(amountTol) {
				continue
			}
			if DaysBetween(a.Date, b.Date) > dateWindowDays {
				continue
			}
			claimedB[j] = true
			matched = true
			outcome.Pairs = append(outcome.Pairs, MatchPair{A: a, B: b})
			break
		}
		if !matched {
			outcome.RemainingA = append(outcome.RemainingA, a)
		}
	}
	for j, b := range unmatchedB {
		if !claimedB[j] {
			outcome.RemainingB = append(outcome.RemainingB, b)
		}
	}
	return outcome
}
