package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"recon-agent/internal/adapters/cli"
	"recon-agent/internal/adapters/repl"
	"recon-agent/internal/ai"
	"recon-agent/internal/app"
	"recon-agent/internal/config"
	"recon-agent/internal/ingest"
	"recon-agent/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Terminal adapters log to stderr so tables on stdout stay clean.
	zlog := logger.NewWithWriter(os.Stderr)

	keywords := ingest.DefaultKeywords()
	if cfg.KeywordsFile != "" {
		keywords, err = ingest.LoadKeywords(cfg.KeywordsFile)
		if err != nil {
			log.Fatalf("keywords: %v", err)
		}
	}

	var insight ai.InsightService
	if cfg.OpenAIAPIKey != "" {
		insight = ai.NewAgent(cfg.OpenAIAPIKey)
	} else {
		log.Println("Warning: OPENAI_API_KEY is not set; /insight serves the fallback narrative")
	}

	svc := app.NewAppService(keywords, insight, zlog)
	ctx := context.Background()

	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:])
		return
	}

	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}
