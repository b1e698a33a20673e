package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptySelection rejects confirming with nothing selected.
	ErrEmptySelection = errors.New("no transactions selected")

	// ErrUnbalancedSelection rejects confirming a selection whose difference
	// exceeds the manual tolerance without an explicit force.
	ErrUnbalancedSelection = errors.New("selection difference exceeds tolerance")
)

// Selection tracks the user-chosen subset of entries on each side and gates
// manual match confirmation on the zero-sum invariant. It holds only derived
// state: ids always refer to the store's current unmatched pools.
type Selection struct {
	store  *Store
	picked map[SetID]map[string]bool
}

// NewSelection returns an empty selection over the given store.
func NewSelection(store *Store) *Selection {
	return &Selection{
		store:  store,
		picked: map[SetID]map[string]bool{SetA: {}, SetB: {}},
	}
}

// Toggle adds the id to the selection if absent and removes it if present.
// Toggling an id twice is a no-op.
func (sel *Selection) Toggle(set SetID, id string) error {
	side, ok := sel.picked[set]
	if !ok {
		return ErrUnknownSet
	}
	if side[id] {
		delete(side, id)
	} else {
		side[id] = true
	}
	return nil
}

// IsSelected reports whether the id is currently selected on the given side.
func (sel *Selection) IsSelected(set SetID, id string) bool {
	return sel.picked[set][id]
}

// SelectedIDs returns the selected ids on one side in pool order. Ids no
// longer present in the pool are skipped.
func (sel *Selection) SelectedIDs(set SetID) []string {
	var ids []string
	for _, tx := range sel.store.Unmatched(set) {
		if sel.picked[set][tx.ID] {
			ids = append(ids, tx.ID)
		}
	}
	return ids
}

// SelectedTotal sums the amounts of the selected entries on one side.
func (sel *Selection) SelectedTotal(set SetID) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range sel.selected(set) {
		total = total.Add(tx.Amount)
	}
	return total
}

// Difference returns SelectedTotal(A) − SelectedTotal(B).
func (sel *Selection) Difference() decimal.Decimal {
	return sel.SelectedTotal(SetA).Sub(sel.SelectedTotal(SetB))
}

// Count returns how many entries are selected across both sides.
func (sel *Selection) Count() int {
	return len(sel.selected(SetA)) + len(sel.selected(SetB))
}

// IsConfirmable reports whether the current selection may be confirmed
// without forcing: the difference is within tolerance and at least one entry
// is selected in total.
func (sel *Selection) IsConfirmable() bool {
	if sel.Count() == 0 {
		return false
	}
	return sel.Difference().Abs().LessThan(ManualTolerance)
}

// Confirm forms a MatchGroup from exactly the selected entries, records it,
// consumes both sides from the store, and clears the selection. With force
// set, an out-of-tolerance group is accepted as an intentional imbalance,
// provided both sides are non-empty; the store re-checks the same rule.
// Nothing is consumed if recording fails.
func (sel *Selection) Confirm(force bool) (*MatchGroup, error) {
	membersA := sel.selected(SetA)
	membersB := sel.selected(SetB)
	if len(membersA)+len(membersB) == 0 {
		return nil, ErrEmptySelection
	}
	diff := SumAmounts(membersA).Sub(SumAmounts(membersB))
	if diff.Abs().GreaterThanOrEqual(ManualTolerance) {
		if !force {
			return nil, ErrUnbalancedSelection
		}
		if len(membersA) == 0 || len(membersB) == 0 {
			return nil, ErrForcedOneSided
		}
	}

	group := MatchGroup{
		ID:        uuid.NewString(),
		MembersA:  membersA,
		MembersB:  membersB,
		Forced:    force && diff.Abs().GreaterThanOrEqual(ManualTolerance),
		Source:    MatchSourceManual,
		CreatedAt: time.Now().UTC(),
	}
	if err := sel.store.RecordMatch(group); err != nil {
		return nil, err
	}
	sel.store.Consume(SetA, txIDs(membersA))
	sel.store.Consume(SetB, txIDs(membersB))
	sel.Clear()

	recorded := sel.store.Matches()
	return &recorded[len(recorded)-1], nil
}

// Clear drops all selections on both sides.
func (sel *Selection) Clear() {
	sel.picked = map[SetID]map[string]bool{SetA: {}, SetB: {}}
}

// selected resolves the selection on one side against the store's current
// pool, in pool order.
func (sel *Selection) selected(set SetID) []Transaction {
	var txs []Transaction
	for _, tx := range sel.store.Unmatched(set) {
		if sel.picked[set][tx.ID] {
			txs = append(txs, tx)
		}
	}
	return txs
}

func txIDs(txs []Transaction) []string {
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	return ids
}
