package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"recon-agent/internal/ai"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // Load .env if present

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}

	agent := ai.NewAgent(apiKey)
	ctx := context.Background()

	summary := `Set A (bank): 3 unmatched, total 1250.00
Set B (ledger): 2 unmatched, total -410.00
Confirmed matches so far: 14

Largest unmatched in A:
  2024-01-10  Invoice 441 Acme Ltd       1000.00
  2024-01-11  Card settlement batch       245.80
  2024-01-12  Coffee                        4.20

Largest unmatched in B:
  2024-01-15  Rent January               -400.00
  2024-01-16  Bank charges                -10.00
`

	fmt.Println("REQUESTING INSIGHT FOR SUMMARY:")
	fmt.Println(summary)

	insight, err := agent.ReconciliationInsight(ctx, summary)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\n--- INSIGHT ---\n")
	fmt.Printf("Narrative: %s\n", insight.Narrative)
	fmt.Println("Suggestions:")
	for _, s := range insight.Suggestions {
		fmt.Printf("- %s\n", s)
	}
}
