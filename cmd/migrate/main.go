package main

import (
	"log"
	"os"

	"portfolio-cms-be/internal/model"
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

	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		// gen_random_uuid
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate for content tables...")
	if err := db.AutoMigrate(model.ContentModels()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating indexes...")
	postMigrationSQL := []string{
		// Tag containment (tags @> '["x"]') uses these.
		`CREATE INDEX IF NOT EXISTS idx_posts_tags ON posts USING GIN (tags jsonb_path_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_insights_tags ON insights USING GIN (tags jsonb_path_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_series_tags ON series USING GIN (tags jsonb_path_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_tags ON photos USING GIN (tags jsonb_path_ops);`,
		// Feed keyset, matching specification.FeedOrder.
		`CREATE INDEX IF NOT EXISTS idx_posts_feed ON posts (pinned DESC, (COALESCE(published_at, '0001-01-01 00:00:00+00'::timestamptz)) DESC, (id::text)) WHERE deleted_at IS NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_insights_feed ON insights (pinned DESC, (COALESCE(published_at, '0001-01-01 00:00:00+00'::timestamptz)) DESC, (id::text)) WHERE deleted_at IS NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_series_feed ON series (pinned DESC, (COALESCE(published_at, '0001-01-01 00:00:00+00'::timestamptz)) DESC, (id::text)) WHERE deleted_at IS NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_photos_feed ON photos (pinned DESC, (COALESCE(published_at, '0001-01-01 00:00:00+00'::timestamptz)) DESC, (id::text)) WHERE deleted_at IS NULL;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
