package repl

import (
	"fmt"
	"strings"

	"recon-agent/internal/app"
	"recon-agent/internal/core"
)

func printImport(result *app.ImportResult) {
	for _, f := range result.Files {
		if f.Error != "" {
			fmt.Printf("FAILED %s: %s\n", f.File, f.Error)
			continue
		}
		fmt.Printf("Imported %d row(s) from %s into set %s (header row %d, %d skipped).\n",
			f.Report.Imported, f.File, result.Set, f.Report.HeaderRow, len(f.Report.Skipped))
		for _, s := range f.Report.Skipped {
			fmt.Printf("  skipped row %d: %s\n", s.Row, s.Reason)
		}
	}
}

func printPool(pool *app.PoolResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 76))
	title := fmt.Sprintf("UNMATCHED — SET %s (total %s)", pool.Set, pool.Total)
	if pool.Query != "" {
		title += fmt.Sprintf("  [filter: %q]", pool.Query)
	}
	fmt.Printf("  %s\n", title)
	fmt.Println(strings.Repeat("=", 76))
	if len(pool.Transactions) == 0 {
		fmt.Println("  Pool is empty.")
		fmt.Println(strings.Repeat("=", 76))
		return
	}
	fmt.Printf("  %4s  %-12s %-36s %14s\n", "#", "DATE", "DESCRIPTION", "AMOUNT")
	fmt.Println(strings.Repeat("-", 76))
	for i, tx := range pool.Transactions {
		fmt.Printf("  %4d  %-12s %-36s %14s\n",
			i+1, tx.Date.Format("2006-01-02"), truncate(tx.Description, 36), tx.Amount.StringFixed(2))
	}
	fmt.Println(strings.Repeat("=", 76))
}

func printSelection(sel *app.SelectionResult) {
	fmt.Println()
	fmt.Printf("SELECTED A : %d row(s), total %s\n", len(sel.A.IDs), sel.A.Total)
	fmt.Printf("SELECTED B : %d row(s), total %s\n", len(sel.B.IDs), sel.B.Total)
	fmt.Printf("DIFFERENCE : %s\n", sel.Difference)
	if sel.Confirmable {
		fmt.Println("STATUS     : balanced — /confirm to match")
	} else {
		fmt.Println("STATUS     : not confirmable (use /confirm force for an intentional imbalance)")
	}
}

func printGroup(g *core.MatchGroup) {
	label := "MATCHED"
	if g.Forced {
		label = "MATCHED (forced)"
	}
	fmt.Printf("%s group %s: %d from A, %d from B, difference %s.\n",
		label, shortID(g.ID), len(g.MembersA), len(g.MembersB), g.Difference().StringFixed(2))
}

func printMatches(result *app.MatchListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 76))
	fmt.Println("  MATCH HISTORY")
	fmt.Println(strings.Repeat("=", 76))
	if len(result.Matches) == 0 {
		fmt.Println("  No matches yet.")
		fmt.Println(strings.Repeat("=", 76))
		return
	}
	fmt.Printf("  %-10s %-8s %-7s %6s %6s %12s  %s\n",
		"GROUP", "SOURCE", "FORCED", "A", "B", "DIFFERENCE", "WHEN")
	fmt.Println(strings.Repeat("-", 76))
	for _, g := range result.Matches {
		fmt.Printf("  %-10s %-8s %-7v %6d %6d %12s  %s\n",
			shortID(g.ID), g.Source, g.Forced, len(g.MembersA), len(g.MembersB),
			g.Difference().StringFixed(2), g.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println(strings.Repeat("=", 76))
}

func printInsight(result *app.InsightResult) {
	fmt.Println()
	if result.Fallback {
		fmt.Println("(offline fallback)")
	}
	fmt.Println(result.Narrative)
	for _, s := range result.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
