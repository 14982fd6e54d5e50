package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"docvault/internal/config"
	"docvault/internal/repository/postgres"
)

const schemaPath = "database/schema.sql"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	ctx := context.Background()
	if _, err := db.Pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Failed to execute schema: %v", err)
	}

	fmt.Println("Schema applied")

	tables := []string{
		"users", "projects", "files", "file_permissions",
		"user_shares", "email_shares", "share_links", "activities",
	}
	for _, table := range tables {
		var exists bool
		query := `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)
		`
		if err := db.Pool.QueryRow(ctx, query, table).Scan(&exists); err != nil {
			log.Fatalf("Failed to verify table %s: %v", table, err)
		}
		if !exists {
			log.Fatalf("Table %s missing after schema run", table)
		}
		fmt.Printf("  %s ok\n", table)
	}
}
