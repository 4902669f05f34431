// Manual backfill of question snapshots.
//
// Instances created through the direct/coding paths resolve their question set
// lazily on first fetch. This script forces resolution for everything still
// unresolved, e.g. after a bulk import.
//
// Usage: go run scripts/resolve_backfill.go

package main

import (
	"context"
	"log"

	"talenthub_backend/internal/config"
	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/service"
	"talenthub_backend/pkg/database"
	"talenthub_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	resolver := service.NewQuestionResolver(
		repository.NewQuestionBankRepository(db),
		service.NewGenerationService(cfg.AI),
		nil,
	)
	interviews := service.NewInterviewService(
		db,
		repository.NewInterviewRepository(db),
		repository.NewCandidateRepository(db),
		repository.NewCampaignRepository(db),
		resolver,
		service.NewCompletionScorer(),
		cfg.Server.BaseURL,
	)

	var ids []string
	if err := db.Model(&model.InterviewInstance{}).
		Where("resolved_at IS NULL").
		Pluck("id", &ids).Error; err != nil {
		log.Fatalf("Failed to list unresolved interviews: %v", err)
	}

	log.Printf("Resolving %d interview(s)...", len(ids))
	failed := 0
	for _, id := range ids {
		if _, err := interviews.Get(context.Background(), id); err != nil {
			log.Printf("interview %s: %v", id, err)
			failed++
		}
	}
	log.Printf("Done: %d resolved, %d failed", len(ids)-failed, failed)
}
