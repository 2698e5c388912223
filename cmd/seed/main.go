package main

import (
	"context"
	"log"
	"os"
	"time"

	"portfolio-cms-be/internal/repository/implementation"
	"portfolio-cms-be/internal/seed"
	"portfolio-cms-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	catalog := seed.Sample(time.Now().UTC())
	log.Printf("Seeding %d content records...", catalog.Count())

	written, err := implementation.SeedCatalog(ctx, db, catalog)
	if err != nil {
		log.Fatalf("Error: seeding failed: %v", err)
	}

	log.Printf("Content seeding completed! %d new, %d already present", written, catalog.Count()-written)
}
