package ingest

import (
	"io"

	"recon-agent/internal/core"
)

// Report describes how one file was interpreted: where the header was found,
// how columns were mapped, and which rows were dropped. Surfacing this lets
// the user review a positional-fallback mapping before confirming matches.
type Report struct {
	File      string        `json:"file"`
	HeaderRow int           `json:"header_row"`
	Mapping   ColumnMapping `json:"mapping"`
	Imported  int           `json:"imported"`
	Skipped   []SkippedRow  `json:"skipped,omitempty"`
}

// ImportFile runs the full ingestion pipeline on one file: decode to a grid,
// detect the header row, map columns, normalize rows. Only an undecodable
// file returns an error (*ParseError); ambiguous layouts and bad cells
// degrade per row and are reported, never fatal.
func ImportFile(name string, r io.Reader, kw Keywords) ([]core.Transaction, *Report, error) {
	grid, err := ReadGrid(name, r)
	if err != nil {
		return nil, nil, err
	}

	headerRow := DetectHeaderRow(grid.Rows, kw)
	mapping := MapColumns(grid.Rows[headerRow], kw)
	txs, skipped := NormalizeRows(grid.Rows, headerRow, mapping)

	report := &Report{
		File:      name,
		HeaderRow: headerRow,
		Mapping:   mapping,
		Imported:  len(txs),
		Skipped:   skipped,
	}
	return txs, report, nil
}
