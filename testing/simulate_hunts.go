// simulate_hunts replays a hunt for one ghost (or all of them) and, when
// GEMINI_API_KEY is set, asks the guide for a tip before every check.
//
//	go run ./testing/simulate_hunts.go [ghost]
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tatianab/ghostbook/internal/config"
	"github.com/tatianab/ghostbook/internal/engine"
	"github.com/tatianab/ghostbook/internal/guide"
	"github.com/tatianab/ghostbook/internal/models"
	"github.com/tatianab/ghostbook/internal/simulate"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	catalog, err := models.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	e := engine.New(catalog)

	var g *guide.Guide
	if cfg.GuideEnabled() {
		g, err = guide.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create guide: %v", err)
		}
		defer g.Close()
	}

	targets := catalog.Ghosts
	if len(os.Args) > 1 {
		ghost, ok := catalog.Lookup(os.Args[1])
		if !ok {
			log.Fatalf("No ghost %q in the catalog", os.Args[1])
		}
		targets = []models.Ghost{ghost}
	}

	for _, target := range targets {
		fmt.Printf("--- Hunting the %s (%s) ---\n", target.Name, target.Signature())
		o, err := simulate.Hunt(ctx, e, target)
		if err != nil {
			log.Fatalf("Hunt failed: %v", err)
		}

		// Replay the hunt so the guide sees the same state the investigator did.
		state := models.EvidenceState{}
		for i, step := range o.Steps {
			if g != nil {
				result := e.Classify(state)
				hints := e.SuggestNext(state, result)
				advice, err := g.Advise(ctx, state, result, hints, e.Summarize(state, result))
				if err != nil {
					fmt.Printf("Guide error: %v\n", err)
				} else {
					fmt.Printf("Guide: %s\n", advice)
				}
			}

			found := "not found"
			if step.Found {
				found = "found"
				state[step.Evidence] = models.Confirmed
			}
			fmt.Printf("Check %d: %s with the %s -> %s (%d left)\n", i+1, step.Evidence, step.Evidence.Equipment(), found, step.Remaining)
			fmt.Printf("Status: %s\n", step.Summary)
		}

		switch {
		case len(o.Tied) > 0:
			fmt.Printf("Ended tied with %v\n\n", o.Tied)
		case o.Identified:
			fmt.Printf("Identified in %d checks\n\n", o.Checks())
		default:
			fmt.Printf("Not identified: %s\n\n", o.Summary)
		}
	}
}
