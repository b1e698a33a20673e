package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"recon-agent/internal/core"
)

// DescriptionPlaceholder fills in for rows whose description cell is blank;
// a transaction description is never empty.
const DescriptionPlaceholder = "(no description)"

// SkipReason explains why a row was dropped during normalization. Skips are
// part of the normal result, not errors: spreadsheet exports are assumed
// messy and user-correctable after the fact.
type SkipReason string

const (
	SkipEmptyRow    SkipReason = "empty_row"
	SkipMissingDate SkipReason = "missing_date"
)

// SkippedRow records one dropped row by its zero-based grid index.
type SkippedRow struct {
	Row    int        `json:"row"`
	Reason SkipReason `json:"reason"`
}

// excelEpoch is the serial-date origin used by spreadsheet applications
// (1899-12-30, which absorbs the historical 1900 leap-year bug).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order on string date cells. Day-first layouts
// precede month-first ones, matching the exports this tool most often sees.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05",
}

// NormalizeRows converts the data rows below the header into transactions
// using the column mapping. Each surviving row yields a transaction with a
// fresh unique id; dropped rows are reported with a reason. Unparsable
// individual cells never abort the import: bad amounts become zero and bad
// date strings fall back to today.
func NormalizeRows(rows [][]string, headerRow int, mapping ColumnMapping) ([]core.Transaction, []SkippedRow) {
	var txs []core.Transaction
	var skipped []SkippedRow

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			skipped = append(skipped, SkippedRow{Row: i, Reason: SkipEmptyRow})
			continue
		}

		dateCell := cellAt(row, mapping[FieldDate])
		if strings.TrimSpace(dateCell) == "" {
			skipped = append(skipped, SkippedRow{Row: i, Reason: SkipMissingDate})
			continue
		}

		description := strings.TrimSpace(cellAt(row, mapping[FieldDescription]))
		if description == "" {
			description = DescriptionPlaceholder
		}

		txs = append(txs, core.Transaction{
			ID:            uuid.NewString(),
			Date:          ParseDate(dateCell),
			Description:   description,
			Amount:        rowAmount(row, mapping),
			Reference:     strings.TrimSpace(cellAt(row, mapping[FieldReference])),
			Counterparty:  strings.TrimSpace(cellAt(row, mapping[FieldCounterparty])),
			LedgerAccount: strings.TrimSpace(cellAt(row, mapping[FieldLedgerAccount])),
			Journal:       strings.TrimSpace(cellAt(row, mapping[FieldJournal])),
		})
	}
	return txs, skipped
}

// rowAmount derives the signed amount. When both debit and credit columns are
// mapped the amount is debit − credit with non-numeric cells as zero;
// otherwise the single amount column is parsed directly.
func rowAmount(row []string, mapping ColumnMapping) decimal.Decimal {
	debitCol, creditCol := mapping[FieldDebit], mapping[FieldCredit]
	if debitCol != ColumnNotFound && creditCol != ColumnNotFound {
		debit := ParseAmount(cellAt(row, debitCol))
		credit := ParseAmount(cellAt(row, creditCol))
		return debit.Sub(credit)
	}
	return ParseAmount(cellAt(row, mapping[FieldAmount]))
}

// ParseAmount parses a numeric cell into a decimal. Currency symbols and
// spaces are stripped; locale-specific separators are not auto-detected.
// Unparsable values normalize to zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "€$£¥ ")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate normalizes a date cell: spreadsheet serial numbers convert via
// the 1899 epoch, strings go through the known layouts, and anything still
// unreadable degrades to today rather than failing the import. The result is
// always truncated to a UTC calendar day.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		days := int(serial)
		return excelEpoch.AddDate(0, 0, days)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t)
		}
	}
	return dateOnly(time.Now())
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func cellAt(row []string, idx int) string {
	if idx == ColumnNotFound || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
