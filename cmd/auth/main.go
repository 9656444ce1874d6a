package main

import (
	"log"
	"os"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/app"
)

func main() {
	cfg, err := app.LoadConfig(os.Getenv("AUTH_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
