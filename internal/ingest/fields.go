package ingest

import "strings"

// Field names a semantic column the normalizer understands.
type Field string

const (
	FieldDate          Field = "date"
	FieldDescription   Field = "description"
	FieldAmount        Field = "amount"
	FieldDebit         Field = "debit"
	FieldCredit        Field = "credit"
	FieldReference     Field = "reference"
	FieldCounterparty  Field = "counterparty"
	FieldLedgerAccount Field = "ledger_account"
	FieldJournal       Field = "journal"
)

// ColumnNotFound is the sentinel index for fields absent from a sheet.
const ColumnNotFound = -1

// headerScanRows bounds how deep into a sheet the header search looks.
// Exports rarely carry more than a handful of title/address rows.
const headerScanRows = 20

// Keywords maps each field to the lower-case fragments that identify its
// column header. Matching is case-insensitive substring containment.
type Keywords map[Field][]string

// DefaultKeywords returns the built-in keyword dictionary. Keywords are kept
// short but never so short they collide with fragments of other headers
// ("cr" would hit "description").
func DefaultKeywords() Keywords {
	return Keywords{
		FieldDate:          {"date", "datum", "data"},
		FieldDescription:   {"description", "narrative", "details", "memo", "particulars", "omschrijving"},
		FieldAmount:        {"amount", "value", "bedrag"},
		FieldDebit:         {"debit", "withdrawal", "money out", "paid out"},
		FieldCredit:        {"credit", "deposit", "money in", "paid in"},
		FieldReference:     {"reference", "ref.", "ref ", "document", "voucher", "cheque", "invoice"},
		FieldCounterparty:  {"counterparty", "payee", "party", "supplier", "customer", "vendor", "name"},
		FieldLedgerAccount: {"account", "ledger", "gl code"},
		FieldJournal:       {"journal", "daybook", "book"},
	}
}

// ColumnMapping maps each semantic field to a column index within one
// imported sheet, or ColumnNotFound. Produced once per file and discarded
// after normalization.
type ColumnMapping map[Field]int

// DetectHeaderRow scores the first headerScanRows rows by how many cells
// contain any keyword of any field, and returns the index of the highest
// scoring row. Ties resolve to the earliest row; an all-zero scan degrades to
// row 0 rather than failing. Pure and idempotent.
func DetectHeaderRow(rows [][]string, kw Keywords) int {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	bestRow, bestScore := 0, 0
	for i := 0; i < limit; i++ {
		score := 0
		for _, cell := range rows[i] {
			if cellMatchesAny(cell, kw) {
				score++
			}
		}
		if score > bestScore {
			bestRow, bestScore = i, score
		}
	}
	return bestRow
}

// MapColumns resolves each field to the first header cell containing one of
// its keywords, then applies the positional fallbacks for minimal or
// unlabeled exports: no date and no description column means column 0 is the
// date and column 1 the description; none of amount/debit/credit means
// column 2 is the amount.
func MapColumns(header []string, kw Keywords) ColumnMapping {
	mapping := ColumnMapping{}
	for field, words := range kw {
		mapping[field] = findColumn(header, words)
	}

	if mapping[FieldDate] == ColumnNotFound && mapping[FieldDescription] == ColumnNotFound {
		mapping[FieldDate] = 0
		mapping[FieldDescription] = 1
	}
	if mapping[FieldAmount] == ColumnNotFound &&
		mapping[FieldDebit] == ColumnNotFound &&
		mapping[FieldCredit] == ColumnNotFound {
		mapping[FieldAmount] = 2
	}
	return mapping
}

func findColumn(header []string, words []string) int {
	for i, cell := range header {
		lower := strings.ToLower(cell)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return i
			}
		}
	}
	return ColumnNotFound
}

func cellMatchesAny(cell string, kw Keywords) bool {
	lower := strings.ToLower(cell)
	if strings.TrimSpace(lower) == "" {
		return false
	}
	for _, words := range kw {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
	}
	return false
}
