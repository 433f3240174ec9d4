package main

import (
	"log"
	"os"

	"ai-coaching-be/internal/model"
	"ai-coaching-be/pkg/database"

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

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// AutoMigrate does not create extensions; uuid generation and the
	// vector column type need these in place first.
	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.Contact{},
		&model.Want{},
		&model.WantStep{},
		&model.WantMetricType{},
		&model.WantMetricValue{},
		&model.WantIteration{},
		&model.RejectedShould{},
		&model.Task{},
		&model.Note{},
		&model.NoteEmbedding{},
		&model.Interaction{},
		&model.ScopeEntry{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.AuditEntry{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Printf("Migration complete: %d tables", len(models))
}
