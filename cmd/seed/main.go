package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"ai-chat-dashboard/internal/config"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/repository"
	pg "ai-chat-dashboard/internal/infra/db/postgres"
	"ai-chat-dashboard/internal/pricing"
)

// Seeds a demo user with projects and usage rows so the dashboard has
// something to render in a fresh environment.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	userID := flag.String("user", "demo-user", "user id to seed data for")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath, true)
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

	projectRepo := pg.NewProjectRepo(pool)
	usageRepo := pg.NewUsageRepo(pool)

	// If the user already has projects, do nothing.
	existing, err := projectRepo.ListByUser(ctx, repository.NoTX, *userID)
	if err != nil {
		log.Fatalf("list projects: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d projects already present for %s. No changes.\n", len(existing), *userID)
		return
	}

	projects := []struct {
		Name string
		Desc string
	}{
		{"Landing Page", "Marketing site built with the assistant"},
		{"Internal Tool", "Ticket triage helper"},
	}
	for _, p := range projects {
		proj := model.NewProject(*userID, p.Name, p.Desc)
		if err := projectRepo.Save(ctx, repository.NoTX, proj); err != nil {
			log.Fatalf("create project %q: %v", p.Name, err)
		}
		fmt.Printf("seeded project: %s (id=%s)\n", proj.Name, proj.ID)
	}

	table := pricing.NewTable()
	usage := []struct {
		Model string
		In    int
		Out   int
	}{
		{pricing.DirectModel, 1200, 450},
		{"google/gemini-2.5-flash", 800, 300},
		{"openai/gpt-5", 2000, 700},
	}
	for _, u := range usage {
		entry, err := table.Lookup(u.Model)
		if err != nil {
			log.Fatalf("price %q: %v", u.Model, err)
		}
		rec := model.NewUsageRecord(*userID, u.Model, pricing.Cost(u.In, u.Out, entry))
		if err := usageRepo.Save(ctx, repository.NoTX, rec); err != nil {
			log.Fatalf("save usage row: %v", err)
		}
		fmt.Printf("seeded usage: %s tokens=%d cost=$%.6f\n", rec.Model, rec.TotalTokens, rec.CostUSD)
	}

	fmt.Println("Seeding complete.")
}
