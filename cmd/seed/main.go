package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"learner-practice-portal/internal/config"
	"learner-practice-portal/internal/domain/model"
	pg "learner-practice-portal/internal/infra/db/postgres"
)

// Seeds one demo subscription per paid tier so the entitlement endpoints
// have something to resolve against in a fresh environment.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	subRepo := pg.NewSubscriptionRepo(pool)

	seed := []struct {
		UserID string
		Plan   model.PlanID
	}{
		{"demo-basic", model.PlanBasic},
		{"demo-standard", model.PlanStandard},
		{"demo-premium", model.PlanPremium},
	}

	for _, s := range seed {
		sub, err := model.NewSubscription(uuid.NewString(), s.UserID, s.Plan, 30*24*time.Hour)
		if err != nil {
			log.Fatalf("build subscription for %q: %v", s.UserID, err)
		}
		if err := subRepo.Save(ctx, sub); err != nil {
			log.Fatalf("save subscription for %q: %v", s.UserID, err)
		}
		fmt.Printf("seeded: user=%s plan=%s id=%s\n", s.UserID, s.Plan, sub.ID)
	}

	fmt.Println("Seeding complete.")
}
