package main

import (
	"log"
	"net/http"

	webAdapter "recon-agent/internal/adapters/web"
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

	zlog := logger.New()

	keywords := ingest.DefaultKeywords()
	if cfg.KeywordsFile != "" {
		keywords, err = ingest.LoadKeywords(cfg.KeywordsFile)
		if err != nil {
			log.Fatalf("keywords: %v", err)
		}
		zlog.Info().Str("file", cfg.KeywordsFile).Msg("loaded keyword overrides")
	}

	var insight ai.InsightService
	if cfg.OpenAIAPIKey != "" {
		insight = ai.NewAgent(cfg.OpenAIAPIKey)
	} else {
		zlog.Warn().Msg("OPENAI_API_KEY not set; insight endpoint serves the fallback narrative")
	}

	svc := app.NewAppService(keywords, insight, zlog)
	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.MaxUploadBytes, zlog)

	zlog.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
