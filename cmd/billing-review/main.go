// billing-review loads an opportunity record from JSON, runs it through the
// billing engine against sandbox provider state, and prints the review sheet.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/dealbridge/billing-engine/client/sandbox"
	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/logger"
	"github.com/dealbridge/billing-engine/services"
	"github.com/dealbridge/billing-engine/types/business"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

func main() {
	var (
		fixturePath = flag.String("fixture", "", "path to a sandbox account-state fixture (JSON)")
		csvOut      = flag.Bool("csv", false, "emit CSV instead of the text review sheet")
		debug       = flag.Bool("debug", false, "dump the raw action structs")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	logger.InitLogger("dev")
	defer logger.Sync()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: billing-review [flags] <opportunity.json>")
		os.Exit(2)
	}

	opp, err := loadOpportunity(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error loading opportunity: %v", err)
	}

	provider := sandbox.NewClient()
	if *fixturePath != "" {
		provider, err = sandbox.NewClientFromFixture(*fixturePath)
		if err != nil {
			log.Fatalf("Error loading fixture: %v", err)
		}
	}

	ctx := context.Background()

	var state *business.AccountState
	if opp.AccountCode != "" {
		state, err = provider.GetAccountState(ctx, opp.AccountCode)
		if err != nil && !errors.Is(err, interfaces.ErrAccountNotFound) {
			log.Fatalf("Error fetching account state: %v", err)
		}
	}

	engine := services.NewBillingEngine(provider, nil, logger.Log)
	review := services.NewReviewService()

	actions := engine.ProcessOpportunity(ctx, opp, state)

	if *debug {
		spew.Fdump(os.Stderr, actions)
	}

	if *csvOut {
		if err := review.WriteCSV(os.Stdout, opp, actions); err != nil {
			log.Fatalf("Error writing CSV: %v", err)
		}
		return
	}

	sheet := review.BuildReviewSheet(opp, actions)
	if err := review.RenderText(os.Stdout, sheet, actions); err != nil {
		log.Fatalf("Error rendering review sheet: %v", err)
	}
}

func loadOpportunity(path string) (*business.Opportunity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var opp business.Opportunity
	if err := json.Unmarshal(data, &opp); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return &opp, nil
}
