package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"recon-agent/internal/app"
	"recon-agent/internal/core"
	"recon-agent/internal/ingest"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "reconcile", "rec", "r":
		if len(args) < 3 {
			log.Fatal("Usage: app reconcile <set-a-file> <set-b-file>")
		}
		importInto(ctx, svc, core.SetA, args[1])
		importInto(ctx, svc, core.SetB, args[2])

		result, err := svc.RunAutoMatch(ctx)
		if err != nil {
			log.Fatalf("Auto-match failed: %v", err)
		}
		fmt.Printf("Auto-matched %d pair(s); %d left in A, %d left in B.\n",
			result.Matched, result.RemainingA, result.RemainingB)
		printPools(ctx, svc)

	case "inspect", "ins", "i":
		if len(args) < 2 {
			log.Fatal("Usage: app inspect <file>")
		}
		name, data := readFile(args[1])
		txs, report, err := ingest.ImportFile(name, bytes.NewReader(data), ingest.DefaultKeywords())
		if err != nil {
			log.Fatalf("Inspect failed: %v", err)
		}
		printReport(report, txs)

	case "insight":
		insight, err := svc.Insight(ctx)
		if err != nil {
			log.Fatalf("Insight failed: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(insight)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: reconcile, inspect, insight", args[0])
	}
}

func readFile(path string) (string, []byte) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	return path, data
}

func importInto(ctx context.Context, svc app.ApplicationService, set core.SetID, path string) {
	name, data := readFile(path)
	result, err := svc.ImportFiles(ctx, set, []app.ImportFile{{Name: name, Data: data}})
	if err != nil {
		log.Fatalf("Import into set %s failed: %v", set, err)
	}
	for _, f := range result.Files {
		if f.Error != "" {
			log.Fatalf("Import %s failed: %s", f.File, f.Error)
		}
		fmt.Printf("Imported %d row(s) from %s into set %s (%d skipped).\n",
			f.Report.Imported, f.File, set, len(f.Report.Skipped))
	}
}

func printPools(ctx context.Context, svc app.ApplicationService) {
	for _, set := range []core.SetID{core.SetA, core.SetB} {
		pool, err := svc.Pool(ctx, set, "")
		if err != nil {
			log.Fatalf("Failed to read pool %s: %v", set, err)
		}
		printPool(pool)
	}
}

func printPool(pool *app.PoolResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  UNMATCHED — SET %s (total %s)\n", pool.Set, pool.Total)
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  %-12s %-38s %15s\n", "DATE", "DESCRIPTION", "AMOUNT")
	fmt.Println(strings.Repeat("-", 72))
	for _, tx := range pool.Transactions {
		fmt.Printf("  %-12s %-38s %15s\n",
			tx.Date.Format("2006-01-02"), truncate(tx.Description, 38), tx.Amount.StringFixed(2))
	}
	fmt.Println(strings.Repeat("=", 72))
}

func printReport(report *ingest.Report, txs []core.Transaction) {
	fmt.Printf("File       : %s\n", report.File)
	fmt.Printf("Header row : %d\n", report.HeaderRow)
	fmt.Println("Columns    :")
	for field, col := range report.Mapping {
		if col == ingest.ColumnNotFound {
			continue
		}
		fmt.Printf("  %-14s -> column %d\n", field, col)
	}
	fmt.Printf("Imported   : %d\n", report.Imported)
	for _, s := range report.Skipped {
		fmt.Printf("  skipped row %d: %s\n", s.Row, s.Reason)
	}
	for _, tx := range txs {
		fmt.Printf("  %s  %-38s %12s\n",
			tx.Date.Format("2006-01-02"), truncate(tx.Description, 38), tx.Amount.StringFixed(2))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
