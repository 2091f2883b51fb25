package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"cardbridge/internal/api"
	"cardbridge/internal/api/handlers"
	"cardbridge/internal/engine/pipeline"
	"cardbridge/internal/pkg/logger"
	"cardbridge/internal/platform/config"
	"cardbridge/internal/platform/printix"
	"cardbridge/internal/platform/storage"
)

func main() {
	configPath := flag.String("config", "", "optional config file; credentials always come from the environment")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	cards, err := storage.NewBlobSource(cfg.Directory)
	if err != nil {
		log.Fatalf("Failed to connect to card directory store: %v", err)
	}

	printixClient := printix.NewClient(cfg.Printix)
	pipe := pipeline.New(printixClient, cards)

	deps := &api.Dependencies{
		WebhookHandler: handlers.NewWebhookHandler(pipe),
		HealthHandler:  handlers.NewHealthHandler(cards),
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
