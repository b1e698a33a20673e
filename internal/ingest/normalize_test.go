package ingest_test

import (
	"testing"
	"time"

	"recon-agent/internal/ingest"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // YYYY-MM-DD
	}{
		{"ISO", "2024-01-10", "2024-01-10"},
		{"DayFirstSlash", "10/01/2024", "2024-01-10"},
		{"DayFirstDash", "10-01-2024", "2024-01-10"},
		{"DottedEuropean", "10.01.2024", "2024-01-10"},
		{"MonthName", "10 Jan 2024", "2024-01-10"},
		{"ExcelSerial", "45301", "2024-01-10"},
		{"ExcelSerialWithTime", "45301.75", "2024-01-10"},
		{"Timestamp", "2024-01-10T09:30:00", "2024-01-10"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ingest.ParseDate(tc.in)
			if got.Format("2006-01-02") != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
			}
			if h, m, s := got.Clock(); h+m+s != 0 {
				t.Errorf("ParseDate(%q) kept time-of-day %02d:%02d:%02d", tc.in, h, m, s)
			}
		})
	}

	t.Run("Garbage_FallsBackToToday", func(t *testing.T) {
		got := ingest.ParseDate("not a date")
		today := time.Now().UTC().Format("2006-01-02")
		if got.Format("2006-01-02") != today {
			t.Errorf("fallback date = %s, want today %s", got.Format("2006-01-02"), today)
		}
	})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100.50", "100.5"},
		{"-42", "-42"},
		{"€ 13.37", "13.37"},
		{"$99.00", "99"},
		{"", "0"},
		{"n/a", "0"},
		{"12,34", "0"}, // locale separators are not auto-detected
	}
	for _, tc := range tests {
		if got := ingest.ParseAmount(tc.in).String(); got != tc.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRows(t *testing.T) {
	kw := ingest.DefaultKeywords()

	t.Run("SkipRulesAndPlaceholders", func(t *testing.T) {
		rows := [][]string{
			{"Date", "Description", "Amount"},
			{"2024-01-02", "Coffee", "-4.20"},
			{"", "", ""},                     // blank → skipped
			{"", "No date here", "10.00"},    // missing date → skipped
			{"2024-01-03", "", "7.00"},       // blank description → placeholder
			{"2024-01-04", "Bad amount", "seven"}, // unparsable amount → 0, retained
		}
		mapping := ingest.MapColumns(rows[0], kw)
		txs, skipped := ingest.NormalizeRows(rows, 0, mapping)

		if len(txs) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txs))
		}
		if txs[1].Description != ingest.DescriptionPlaceholder {
			t.Errorf("blank description = %q, want placeholder", txs[1].Description)
		}
		if !txs[2].Amount.IsZero() {
			t.Errorf("unparsable amount = %s, want 0", txs[2].Amount)
		}
		for _, tx := range txs {
			if tx.ID == "" {
				t.Error("transaction missing generated id")
			}
		}

		wantSkips := []ingest.SkippedRow{
			{Row: 2, Reason: ingest.SkipEmptyRow},
			{Row: 3, Reason: ingest.SkipMissingDate},
		}
		if len(skipped) != len(wantSkips) {
			t.Fatalf("expected %d skips, got %d: %v", len(wantSkips), len(skipped), skipped)
		}
		for i, want := range wantSkips {
			if skipped[i] != want {
				t.Errorf("skip[%d] = %+v, want %+v", i, skipped[i], want)
			}
		}
	})

	t.Run("DebitCreditEqualsSignedAmount", func(t *testing.T) {
		// The same transactions expressed as debit/credit columns and as a
		// single signed column must normalize to equal amounts.
		debitCredit := [][]string{
			{"Date", "Description", "Debit", "Credit"},
			{"2024-01-02", "Sale", "120.00", ""},
			{"2024-01-03", "Refund", "", "35.50"},
			{"2024-01-04", "Fee note", "10.00", "2.50"},
		}
		signed := [][]string{
			{"Date", "Description", "Amount"},
			{"2024-01-02", "Sale", "120.00"},
			{"2024-01-03", "Refund", "-35.50"},
			{"2024-01-04", "Fee note", "7.50"},
		}

		dcTxs, _ := ingest.NormalizeRows(debitCredit, 0, ingest.MapColumns(debitCredit[0], kw))
		sTxs, _ := ingest.NormalizeRows(signed, 0, ingest.MapColumns(signed[0], kw))

		if len(dcTxs) != len(sTxs) {
			t.Fatalf("row counts differ: %d vs %d", len(dcTxs), len(sTxs))
		}
		for i := range dcTxs {
			if !dcTxs[i].Amount.Equal(sTxs[i].Amount) {
				t.Errorf("row %d: debit/credit amount %s != signed amount %s", i, dcTxs[i].Amount, sTxs[i].Amount)
			}
		}
	})

	t.Run("PositionalAmountFallback_NonNumericText", func(t *testing.T) {
		// No amount, debit, or credit column anywhere: column 2 is assumed
		// to be the amount. Non-numeric text there yields 0, row retained.
		rows := [][]string{
			{"when", "what", "how much"},
			{"2024-01-02", "Mystery export", "lots"},
		}
		mapping := ingest.MapColumns(rows[0], kw)
		txs, skipped := ingest.NormalizeRows(rows, 0, mapping)

		if len(txs) != 1 {
			t.Fatalf("expected 1 transaction, got %d (skips: %v)", len(txs), skipped)
		}
		if !txs[0].Amount.IsZero() {
			t.Errorf("amount = %s, want 0", txs[0].Amount)
		}
	})

	t.Run("OptionalFieldsCarried", func(t *testing.T) {
		rows := [][]string{
			{"Date", "Narrative", "Amount", "Reference", "Payee", "GL Code", "Journal"},
			{"2024-01-02", "Office chairs", "-250.00", "PO-77", "OfficeWorld", "6100", "PUR"},
		}
		mapping := ingest.MapColumns(rows[0], kw)
		txs, _ := ingest.NormalizeRows(rows, 0, mapping)

		if len(txs) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txs))
		}
		tx := txs[0]
		if tx.Reference != "PO-77" || tx.Counterparty != "OfficeWorld" || tx.LedgerAccount != "6100" || tx.Journal != "PUR" {
			t.Errorf("optional fields not carried: %+v", tx)
		}
	})
}
