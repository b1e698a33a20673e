package core

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrUnknownSet is returned for a set id other than A or B.
	ErrUnknownSet = errors.New("unknown set: must be A or B")

	// ErrEmptyGroup rejects recording a match group with no members on
	// either side.
	ErrEmptyGroup = errors.New("match group has no members")

	// ErrUnbalancedGroup rejects an out-of-tolerance group that was not
	// explicitly forced.
	ErrUnbalancedGroup = errors.New("match group difference exceeds tolerance")

	// ErrForcedOneSided rejects a forced imbalance unless both member lists
	// are non-empty. A one-sided "match" is a write-off, not a match.
	ErrForcedOneSided = errors.New("forced match requires members on both sides")
)

// Store owns the two unmatched pools and the confirmed-match history for the
// session. It is mutated only by import, consumption on match, and reset.
// Store methods are not safe for concurrent use; callers serialize access
// (the application service holds the lock).
type Store struct {
	pools   map[SetID][]Transaction
	history []MatchGroup
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{pools: map[SetID][]Transaction{SetA: {}, SetB: {}}}
}

// ImportInto appends transactions to the chosen pool. It never deduplicates:
// the same export imported twice yields duplicate entries by design.
func (s *Store) ImportInto(set SetID, txs []Transaction) error {
	if _, ok := s.pools[set]; !ok {
		return ErrUnknownSet
	}
	s.pools[set] = append(s.pools[set], txs...)
	return nil
}

// Unmatched returns a copy of the named pool in its current order.
func (s *Store) Unmatched(set SetID) []Transaction {
	pool := s.pools[set]
	out := make([]Transaction, len(pool))
	copy(out, pool)
	return out
}

// ByID looks a transaction up in the named pool.
func (s *Store) ByID(set SetID, id string) (Transaction, bool) {
	for _, tx := range s.pools[set] {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// Filter returns the pool entries whose description, amount text, or
// counterparty contains the query, case-insensitively. An empty query returns
// the whole pool. Pure read; never mutates stored state.
func (s *Store) Filter(set SetID, query string) []Transaction {
	if strings.TrimSpace(query) == "" {
		return s.Unmatched(set)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Transaction
	for _, tx := range s.pools[set] {
		if strings.Contains(strings.ToLower(tx.Description), q) ||
			strings.Contains(tx.Amount.String(), q) ||
			strings.Contains(strings.ToLower(tx.Counterparty), q) {
			out = append(out, tx)
		}
	}
	return out
}

// Consume removes the given ids from the named pool. Ids not present are
// silently ignored; consuming nothing is a no-op.
func (s *Store) Consume(set SetID, ids []string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	pool := s.pools[set]
	kept := pool[:0]
	for _, tx := range pool {
		if !drop[tx.ID] {
			kept = append(kept, tx)
		}
	}
	s.pools[set] = kept
}

// RecordMatch validates a group and appends it to the history. This is the
// final enforcement point for the balance invariant: a group must net to
// within ManualTolerance, or be explicitly forced with members on both sides.
// Callers consume the member ids from the pools after a successful record.
func (s *Store) RecordMatch(group MatchGroup) error {
	if len(group.MembersA) == 0 && len(group.MembersB) == 0 {
		return ErrEmptyGroup
	}
	if !group.Balanced() {
		if !group.Forced {
			return ErrUnbalancedGroup
		}
		if len(group.MembersA) == 0 || len(group.MembersB) == 0 {
			return ErrForcedOneSided
		}
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	for i := range group.MembersA {
		group.MembersA[i].Matched = true
		group.MembersA[i].MatchID = group.ID
	}
	for i := range group.MembersB {
		group.MembersB[i].Matched = true
		group.MembersB[i].MatchID = group.ID
	}
	s.history = append(s.history, group)
	return nil
}

// Matches returns a copy of the confirmed-match history, oldest first.
func (s *Store) Matches() []MatchGroup {
	out := make([]MatchGroup, len(s.history))
	copy(out, s.history)
	return out
}

// Reset clears both pools and the history unconditionally. Irreversible
// within the session.
func (s *Store) Reset() {
	s.pools = map[SetID][]Transaction{SetA: {}, SetB: {}}
	s.history = nil
}
