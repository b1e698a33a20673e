package app

import (
	"context"

	"recon-agent/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web)
// call. It decouples presentation from the reconciliation engine.
// Implementations must contain no fmt.Println, no ANSI codes, and no display
// logic of any kind.
type ApplicationService interface {
	// ImportFiles parses and normalizes a batch of uploaded files into the
	// named set. Failures are per-file: one undecodable file never aborts the
	// rest of the batch.
	ImportFiles(ctx context.Context, set core.SetID, files []ImportFile) (*ImportResult, error)

	// Pool returns the unmatched pool of one set, optionally filtered by a
	// case-insensitive free-text query over description, amount text, and
	// counterparty. Pure read.
	Pool(ctx context.Context, set core.SetID, query string) (*PoolResult, error)

	// ToggleSelect flips the selection state of one transaction id on one
	// side. Toggling is idempotent: add if absent, remove if present.
	ToggleSelect(ctx context.Context, set core.SetID, id string) (*SelectionResult, error)

	// Selection returns the current selection totals, cross-set difference,
	// and confirmability flag.
	Selection(ctx context.Context) (*SelectionResult, error)

	// ConfirmMatch confirms the current selection as a match group. With
	// force set, an out-of-tolerance difference is accepted as an intentional
	// imbalance provided both sides have members.
	ConfirmMatch(ctx context.Context, force bool) (*ConfirmResult, error)

	// RunAutoMatch performs one greedy heuristic pass over the unmatched
	// pools, committing every proposed 1:1 pair. One invocation, one pass;
	// the caller re-triggers on demand.
	RunAutoMatch(ctx context.Context) (*AutoMatchResult, error)

	// Matches returns the confirmed-match history, oldest first.
	Matches(ctx context.Context) (*MatchListResult, error)

	// Insight summarizes the unmatched pools and asks the text-generation
	// service for a short narrative. A service failure yields the static
	// fallback narrative, never an error that reaches the engine.
	Insight(ctx context.Context) (*InsightResult, error)

	// ResetAll clears both pools, the history, and the selection.
	// Irreversible within the session.
	ResetAll(ctx context.Context) error
}
