package app

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"recon-agent/internal/ai"
	"recon-agent/internal/core"
	"recon-agent/internal/ingest"
)

// appService owns the session state: the two-set store and the selection.
// The engine itself is single-session and mutated serially; the mutex only
// serializes the concurrent HTTP transport onto that model.
type appService struct {
	mu        sync.Mutex
	store     *core.Store
	selection *core.Selection
	keywords  ingest.Keywords
	insight   ai.InsightService
	log       zerolog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
// insight may be nil when no API key is configured; every insight request
// then returns the fallback narrative.
func NewAppService(keywords ingest.Keywords, insight ai.InsightService, log zerolog.Logger) ApplicationService {
	store := core.NewStore()
	return &appService{
		store:     store,
		selection: core.NewSelection(store),
		keywords:  keywords,
		insight:   insight,
		log:       log,
	}
}

// ImportFiles runs the ingestion pipeline per file and appends the surviving
// transactions to the named pool. An undecodable file is reported on its own
// entry and the batch continues.
func (s *appService) ImportFiles(ctx context.Context, set core.SetID, files []ImportFile) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := core.ParseSetID(string(set)); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to import")
	}

	result := &ImportResult{Set: set}
	for _, f := range files {
		txs, report, err := ingest.ImportFile(f.Name, bytes.NewReader(f.Data), s.keywords)
		if err != nil {
			s.log.Warn().Str("file", f.Name).Err(err).Msg("import failed")
			result.Files = append(result.Files, FileImport{File: f.Name, Error: err.Error()})
			continue
		}
		if err := s.store.ImportInto(set, txs); err != nil {
			return nil, err
		}
		s.log.Info().Str("file", f.Name).Str("set", string(set)).
			Int("imported", report.Imported).Int("skipped", len(report.Skipped)).
			Msg("file imported")
		result.Files = append(result.Files, FileImport{File: f.Name, Report: report})
	}
	return result, nil
}

// Pool returns the (optionally filtered) unmatched projection of one set.
func (s *appService) Pool(ctx context.Context, set core.SetID, query string) (*PoolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := core.ParseSetID(string(set)); err != nil {
		return nil, err
	}
	txs := s.store.Filter(set, query)
	return &PoolResult{
		Set:          set,
		Query:        query,
		Transactions: txs,
		Total:        core.SumAmounts(txs).StringFixed(2),
	}, nil
}

// ToggleSelect flips one id and returns the refreshed selection projection.
func (s *appService) ToggleSelect(ctx context.Context, set core.SetID, id string) (*SelectionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.selection.Toggle(set, id); err != nil {
		return nil, err
	}
	return s.selectionResult(), nil
}

// Selection returns the current selection projection.
func (s *appService) Selection(ctx context.Context) (*SelectionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectionResult(), nil
}

// ConfirmMatch confirms the current selection as a manual match group.
func (s *appService) ConfirmMatch(ctx context.Context, force bool) (*ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.selection.Confirm(force)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("match_id", group.ID).Bool("forced", group.Forced).
		Str("difference", group.Difference().StringFixed(2)).Msg("manual match confirmed")
	return &ConfirmResult{Group: group}, nil
}

// RunAutoMatch performs one heuristic pass and commits every proposed pair:
// the claimed ids are consumed from both pools and each pair lands in the
// same history as manual matches.
func (s *appService) RunAutoMatch(ctx context.Context) (*AutoMatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := core.AutoMatch(
		s.store.Unmatched(core.SetA),
		s.store.Unmatched(core.SetB),
		core.AutoAmountTolerance,
		core.AutoDateWindowDays,
	)

	var idsA, idsB []string
	for _, pair := range outcome.Pairs {
		group := core.MatchGroup{
			ID:        uuid.NewString(),
			MembersA:  []core.Transaction{pair.A},
			MembersB:  []core.Transaction{pair.B},
			Source:    core.MatchSourceAuto,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.RecordMatch(group); err != nil {
			return nil, fmt.Errorf("record auto match: %w", err)
		}
		idsA = append(idsA, pair.A.ID)
		idsB = append(idsB, pair.B.ID)
	}
	s.store.Consume(core.SetA, idsA)
	s.store.Consume(core.SetB, idsB)

	s.log.Info().Int("matched", len(outcome.Pairs)).
		Int("remaining_a", len(outcome.RemainingA)).
		Int("remaining_b", len(outcome.RemainingB)).
		Msg("auto-match pass completed")

	return &AutoMatchResult{
		Matched:    len(outcome.Pairs),
		RemainingA: len(outcome.RemainingA),
		RemainingB: len(outcome.RemainingB),
	}, nil
}

// Matches returns the confirmed-match history.
func (s *appService) Matches(ctx context.Context) (*MatchListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &MatchListResult{Matches: s.store.Matches()}, nil
}

// Insight builds the compact pool summary and asks the insight service for a
// narrative. Any failure, including a missing service, degrades to the
// static fallback; transaction state is never affected.
func (s *appService) Insight(ctx context.Context) (*InsightResult, error) {
	s.mu.Lock()
	summary := buildInsightSummary(s.store)
	insight := s.insight
	s.mu.Unlock()

	if insight == nil {
		return &InsightResult{Narrative: ai.FallbackNarrative, Fallback: true}, nil
	}
	generated, err := insight.ReconciliationInsight(ctx, summary)
	if err != nil {
		s.log.Warn().Err(err).Msg("insight service failed, using fallback")
		return &InsightResult{Narrative: ai.FallbackNarrative, Fallback: true}, nil
	}
	return &InsightResult{
		Narrative:   generated.Narrative,
		Suggestions: generated.Suggestions,
	}, nil
}

// ResetAll clears the whole session.
func (s *appService) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Reset()
	s.selection.Clear()
	s.log.Info().Msg("session reset")
	return nil
}

// selectionResult projects the validator state. Callers hold the lock.
func (s *appService) selectionResult() *SelectionResult {
	return &SelectionResult{
		A: SideSelection{
			IDs:   s.selection.SelectedIDs(core.SetA),
			Total: s.selection.SelectedTotal(core.SetA).StringFixed(2),
		},
		B: SideSelection{
			IDs:   s.selection.SelectedIDs(core.SetB),
			Total: s.selection.SelectedTotal(core.SetB).StringFixed(2),
		},
		Difference:  s.selection.Difference().StringFixed(2),
		Confirmable: s.selection.IsConfirmable(),
	}
}

// buildInsightSummary renders unmatched totals and the top items on each side
// as the compact text the insight service consumes.
func buildInsightSummary(store *core.Store) string {
	var b strings.Builder
	for _, set := range []core.SetID{core.SetA, core.SetB} {
		pool := store.Unmatched(set)
		fmt.Fprintf(&b, "Set %s: %d unmatched entries, total %s\n",
			set, len(pool), core.SumAmounts(pool).StringFixed(2))

		top := make([]core.Transaction, len(pool))
		copy(top, pool)
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].Amount.Abs().GreaterThan(top[j].Amount.Abs())
		})
		if len(top) > 5 {
			top = top[:5]
		}
		for _, tx := range top {
			fmt.Fprintf(&b, "  - %s  %s  %s\n",
				tx.Date.Format("2006-01-02"), tx.Amount.StringFixed(2), tx.Description)
		}
	}
	fmt.Fprintf(&b, "Confirmed matches so far: %d\n", len(store.Matches()))
	return b.String()
}
