package main

import (
	"context"
	"log"
	"os"

	"github.com/foliocms/foliocms/internal/config"
	"github.com/foliocms/foliocms/internal/database"
	"github.com/foliocms/foliocms/internal/portfolio/repository"
	"github.com/foliocms/foliocms/internal/portfolio/service"
)

// seed writes the default dataset for every portfolio section that does not
// exist yet. Safe to run repeatedly; present sections are never touched.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGODB_URI is required")
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	col := client.Database(cfg.MongoDB.Database).Collection("portfolio")
	svc := service.NewService(repository.NewMongoRepository(col))

	initialized, err := svc.Seed(ctx)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	if len(initialized) == 0 {
		log.Println("all sections already present, nothing to do")
		os.Exit(0)
	}
	for _, section := range initialized {
		log.Printf("initialized %s section", section)
	}
}
