// Manual backfill for answer title snapshots.
//
// Resolve toggles keep snapshots fresh per question, but a bulk import or a
// change to the title tier table leaves old answers stamped with stale
// titles. This recomputes every snapshot from the score ledger.
//
// Usage: go run scripts/backfill_titles.go

package main

import (
	"log"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/service"
	"campus_hub_backend/pkg/database"
	"campus_hub_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	scoreService, err := service.NewScoreService(repository.NewScoreRepository(db), db)
	if err != nil {
		log.Fatalf("load title tiers: %v", err)
	}

	questions, err := questionRepo.FindAll(0)
	if err != nil {
		log.Fatalf("list questions: %v", err)
	}

	updated := 0
	for _, question := range questions {
		category := question.Category
		if !scoreService.HasCategory(category) {
			category = "others"
		}

		answers, err := questionRepo.AllAnswers(question.ID)
		if err != nil {
			log.Fatalf("list answers for %s: %v", question.ID, err)
		}

		seen := make(map[string]bool)
		for _, answer := range answers {
			if seen[answer.UserID] {
				continue
			}
			seen[answer.UserID] = true

			user, err := userRepo.FindByGithubUsername(answer.UserID)
			if err != nil {
				log.Printf("skip %s: no profile", answer.UserID)
				continue
			}
			title := scoreService.CurrentTitle(user.StudentID, category)
			if err := questionRepo.RefreshUserTitles(db, question.ID, answer.UserID, title); err != nil {
				log.Fatalf("refresh titles for %s on %s: %v", answer.UserID, question.ID, err)
			}
			updated++
		}
	}

	log.Printf("done: refreshed snapshots for %d question/user pairs", updated)
}
