package main

import (
	"log"
	"os"

	"github.com/dealbridge/billing-engine/client/sandbox"
	"github.com/dealbridge/billing-engine/logger"
	"github.com/dealbridge/billing-engine/server"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		// A missing .env file is fine in environments that set variables
		// directly.
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = "dev"
	}
	logger.InitLogger(stage)
	defer logger.Sync()

	provider := sandbox.NewClient()
	if fixture := os.Getenv("SANDBOX_FIXTURE"); fixture != "" {
		provider, err = sandbox.NewClientFromFixture(fixture)
		if err != nil {
			log.Fatalf("Error loading sandbox fixture: %v", err)
		}
	}

	r := server.New(provider, logger.Log)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
