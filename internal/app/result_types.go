package app

import (
	"recon-agent/internal/core"
	"recon-agent/internal/ingest"
)

// FileImport reports the outcome for a single file in an import batch.
// Exactly one of Report and Error is set.
type FileImport struct {
	File   string         `json:"file"`
	Report *ingest.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// ImportResult is returned by ImportFiles.
type ImportResult struct {
	Set   core.SetID   `json:"set"`
	Files []FileImport `json:"files"`
}

// PoolResult is returned by Pool.
type PoolResult struct {
	Set          core.SetID         `json:"set"`
	Query        string             `json:"query,omitempty"`
	Transactions []core.Transaction `json:"transactions"`
	Total        string             `json:"total"`
}

// SideSelection is the selection state of one side.
type SideSelection struct {
	IDs   []string `json:"ids"`
	Total string   `json:"total"`
}

// SelectionResult is returned by ToggleSelect and Selection.
type SelectionResult struct {
	A           SideSelection `json:"a"`
	B           SideSelection `json:"b"`
	Difference  string        `json:"difference"`
	Confirmable bool          `json:"confirmable"`
}

// ConfirmResult is returned by ConfirmMatch.
type ConfirmResult struct {
	Group *core.MatchGroup `json:"group"`
}

// AutoMatchResult is returned by RunAutoMatch.
type AutoMatchResult struct {
	Matched    int `json:"matched"`
	RemainingA int `json:"remaining_a"`
	RemainingB int `json:"remaining_b"`
}

// MatchListResult is returned by Matches.
type MatchListResult struct {
	Matches []core.MatchGroup `json:"matches"`
}

// InsightResult is returned by Insight. Fallback marks a narrative that was
// substituted locally because the text-generation service failed.
type InsightResult struct {
	Narrative   string   `json:"narrative"`
	Suggestions []string `json:"suggestions,omitempty"`
	Fallback    bool     `json:"fallback"`
}
