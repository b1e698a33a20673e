package core_test

import (
	"errors"
	"testing"

	"recon-agent/internal/core"
)

func seededStore(t *testing.T) *core.Store {
	t.Helper()
	s := core.NewStore()
	if err := s.ImportInto(core.SetA, []core.Transaction{
		tx("a1", "100.00", "2024-01-10"),
		tx("a2", "50.00", "2024-01-11"),
	}); err != nil {
		t.Fatalf("ImportInto A: %v", err)
	}
	if err := s.ImportInto(core.SetB, []core.Transaction{
		tx("b1", "100.00", "2024-01-12"),
		tx("b2", "80.00", "2024-01-12"),
		tx("b3", "50.00", "2024-01-13"),
	}); err != nil {
		t.Fatalf("ImportInto B: %v", err)
	}
	return s
}

func TestSelection_ToggleIsIdempotent(t *testing.T) {
	sel := core.NewSelection(seededStore(t))

	if err := sel.Toggle(core.SetA, "a1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !sel.IsSelected(core.SetA, "a1") {
		t.Fatal("a1 not selected after first toggle")
	}
	if err := sel.Toggle(core.SetA, "a1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if sel.IsSelected(core.SetA, "a1") {
		t.Fatal("a1 still selected after second toggle")
	}
	if sel.Count() != 0 {
		t.Errorf("expected empty selection, count=%d", sel.Count())
	}
}

func TestSelection_TotalsAndDifference(t *testing.T) {
	sel := core.NewSelection(seededStore(t))
	_ = sel.Toggle(core.SetA, "a1")
	_ = sel.Toggle(core.SetA, "a2")
	_ = sel.Toggle(core.SetB, "b2")

	if got := sel.SelectedTotal(core.SetA).String(); got != "150" {
		t.Errorf("SelectedTotal(A) = %s, want 150", got)
	}
	if got := sel.SelectedTotal(core.SetB).String(); got != "80" {
		t.Errorf("SelectedTotal(B) = %s, want 80", got)
	}
	if got := sel.Difference().String(); got != "70" {
		t.Errorf("Difference = %s, want 70", got)
	}
}

func TestSelection_IsConfirmable(t *testing.T) {
	tests := []struct {
		name  string
		pickA []string
		pickB []string
		want  bool
	}{
		{"NothingSelected", nil, nil, false},
		{"ExactBalance", []string{"a1"}, []string{"b1"}, true},
		{"OffByTwenty", []string{"a1"}, []string{"b2"}, false},
		{"OneSidedNonZero", []string{"a1", "a2"}, nil, false},
		{"FiftyAgainstFifty", []string{"a2"}, []string{"b3"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := core.NewSelection(seededStore(t))
			for _, id := range tc.pickA {
				_ = sel.Toggle(core.SetA, id)
			}
			for _, id := range tc.pickB {
				_ = sel.Toggle(core.SetB, id)
			}
			if got := sel.IsConfirmable(); got != tc.want {
				t.Errorf("IsConfirmable = %v, want %v (difference %s)", got, tc.want, sel.Difference())
			}
		})
	}
}

func TestSelection_Confirm(t *testing.T) {
	t.Run("BalancedSelection", func(t *testing.T) {
		s := seededStore(t)
		sel := core.NewSelection(s)
		_ = sel.Toggle(core.SetA, "a1")
		_ = sel.Toggle(core.SetB, "b1")

		group, err := sel.Confirm(false)
		if err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if !group.Difference().IsZero() {
			t.Errorf("group difference = %s, want 0", group.Difference())
		}
		if group.Source != core.MatchSourceManual {
			t.Errorf("source = %s, want manual", group.Source)
		}
		if _, ok := s.ByID(core.SetA, "a1"); ok {
			t.Error("a1 still in pool A after confirm")
		}
		if _, ok := s.ByID(core.SetB, "b1"); ok {
			t.Error("b1 still in pool B after confirm")
		}
		if sel.Count() != 0 {
			t.Error("selection not cleared after confirm")
		}
		if len(s.Matches()) != 1 {
			t.Errorf("expected 1 match in history, got %d", len(s.Matches()))
		}
	})

	t.Run("UnbalancedWithoutForce_NothingConsumed", func(t *testing.T) {
		s := seededStore(t)
		sel := core.NewSelection(s)
		_ = sel.Toggle(core.SetA, "a1")
		_ = sel.Toggle(core.SetB, "b2")

		if _, err := sel.Confirm(false); !errors.Is(err, core.ErrUnbalancedSelection) {
			t.Fatalf("expected ErrUnbalancedSelection, got %v", err)
		}
		if len(s.Unmatched(core.SetA)) != 2 || len(s.Unmatched(core.SetB)) != 3 {
			t.Error("pools changed on a rejected confirm")
		}
		if sel.Count() != 2 {
			t.Error("selection cleared on a rejected confirm")
		}
	})

	t.Run("ForcedImbalance_BothSides", func(t *testing.T) {
		s := seededStore(t)
		sel := core.NewSelection(s)
		_ = sel.Toggle(core.SetA, "a1")
		_ = sel.Toggle(core.SetB, "b2")

		group, err := sel.Confirm(true)
		if err != nil {
			t.Fatalf("Confirm(force): %v", err)
		}
		if !group.Forced {
			t.Error("forced group not flagged as forced")
		}
		if got := group.Difference().String(); got != "20" {
			t.Errorf("difference = %s, want 20", got)
		}
	})

	t.Run("ForcedOneSided_Rejected", func(t *testing.T) {
		sel := core.NewSelection(seededStore(t))
		_ = sel.Toggle(core.SetA, "a1")

		if _, err := sel.Confirm(true); !errors.Is(err, core.ErrForcedOneSided) {
			t.Fatalf("expected ErrForcedOneSided, got %v", err)
		}
	})

	t.Run("EmptySelection_Rejected", func(t *testing.T) {
		sel := core.NewSelection(seededStore(t))
		if _, err := sel.Confirm(false); !errors.Is(err, core.ErrEmptySelection) {
			t.Fatalf("expected ErrEmptySelection, got %v", err)
		}
	})
}

// Confirmed manual groups carry the balance invariant: |sum(A) − sum(B)| is
// within the manual tolerance unless the group was explicitly forced.
func TestSelection_ConfirmedGroupsHoldInvariant(t *testing.T) {
	s := seededStore(t)
	sel := core.NewSelection(s)

	_ = sel.Toggle(core.SetA, "a1")
	_ = sel.Toggle(core.SetB, "b1")
	if _, err := sel.Confirm(false); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	_ = sel.Toggle(core.SetA, "a2")
	_ = sel.Toggle(core.SetB, "b3")
	if _, err := sel.Confirm(false); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	for _, g := range s.Matches() {
		if g.Forced {
			continue
		}
		if g.Difference().Abs().GreaterThanOrEqual(core.ManualTolerance) {
			t.Errorf("group %s difference %s breaks the balance invariant", g.ID, g.Difference())
		}
	}
}
