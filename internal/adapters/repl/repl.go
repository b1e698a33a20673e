package repl

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"recon-agent/internal/app"
	"recon-agent/internal/core"
)

// Run starts the interactive REPL loop. It reads slash commands from reader
// and dispatches them against the ApplicationService. Row numbers shown by
// /show are 1-based positions within the current unmatched pool, so /sel
// indexes stay valid until the pool changes.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	fmt.Println("Reconciliation Workbench")
	fmt.Println("Load a file into each set, select rows, confirm matches. /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "load", "l":
			if len(args) < 2 {
				fmt.Println("Usage: /load <a|b> <file>")
				return nil
			}
			set, err := core.ParseSetID(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			result, err := svc.ImportFiles(ctx, set, []app.ImportFile{{Name: args[1], Data: data}})
			if err != nil {
				return err
			}
			printImport(result)

		case "show", "s":
			query := ""
			sets := []core.SetID{core.SetA, core.SetB}
			if len(args) > 0 {
				set, err := core.ParseSetID(args[0])
				if err != nil {
					return err
				}
				sets = []core.SetID{set}
				query = strings.Join(args[1:], " ")
			}
			for _, set := range sets {
				pool, err := svc.Pool(ctx, set, query)
				if err != nil {
					return err
				}
				printPool(pool)
			}

		case "sel", "select":
			if len(args) < 2 {
				fmt.Println("Usage: /sel <a|b> <row-number> [row-number ...]")
				return nil
			}
			set, err := core.ParseSetID(args[0])
			if err != nil {
				return err
			}
			pool, err := svc.Pool(ctx, set, "")
			if err != nil {
				return err
			}
			var sel *app.SelectionResult
			for _, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil || n < 1 || n > len(pool.Transactions) {
					fmt.Printf("Invalid row number: %s (pool has %d rows)\n", arg, len(pool.Transactions))
					return nil
				}
				sel, err = svc.ToggleSelect(ctx, set, pool.Transactions[n-1].ID)
				if err != nil {
					return err
				}
			}
			printSelection(sel)

		case "selection", "st", "status":
			sel, err := svc.Selection(ctx)
			if err != nil {
				return err
			}
			printSelection(sel)

		case "confirm", "c":
			force := len(args) > 0 && strings.EqualFold(args[0], "force")
			result, err := svc.ConfirmMatch(ctx, force)
			if err != nil {
				return err
			}
			printGroup(result.Group)

		case "auto", "a":
			result, err := svc.RunAutoMatch(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Auto-matched %d pair(s); %d left in A, %d left in B.\n",
				result.Matched, result.RemainingA, result.RemainingB)

		case "matches", "m":
			result, err := svc.Matches(ctx)
			if err != nil {
				return err
			}
			printMatches(result)

		case "insight", "ai":
			fmt.Println("[AI] Thinking...")
			result, err := svc.Insight(ctx)
			if err != nil {
				return err
			}
			printInsight(result)

		case "reset":
			if err := svc.ResetAll(ctx); err != nil {
				return err
			}
			fmt.Println("Session cleared: both pools, the selection, and the history are empty.")

		case "help", "h":
			printHelp()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Print("\n> ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !strings.HasPrefix(input, "/") {
			fmt.Println("Commands start with a slash — type /help.")
			continue
		}

		if err := dispatchSlash(input); err != nil {
			if err == errExit {
				fmt.Println("Goodbye!")
				break
			}
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  /load <a|b> <file>      Import a CSV/TSV/XLSX file into set A or B
  /show [a|b] [query]     Show unmatched pool(s), optionally filtered
  /sel <a|b> <row> ...    Toggle row(s) by the number shown by /show
  /selection              Show current selection totals and difference
  /confirm [force]        Confirm the selection as a match group
  /auto                   Run one automatic matching pass
  /matches                Show confirmed match history
  /insight                Ask the AI for a reconciliation narrative
  /reset                  Clear pools, selection, and history
  /exit                   Quit`)
}
