package main

import (
	"log"
	"os"

	"contractvault-be/internal/model"
	"contractvault-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Starting GORM migration...")

	// Extensions GORM AutoMigrate does not handle.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: setup SQL failed: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.PasswordResetOTP{},
		&model.Plan{},
		&model.PlanChangeRequest{},
		&model.UsageRecord{},
		&model.File{},
		&model.ChatMessage{},
		&model.Template{},
		&model.Notification{},
		&model.SystemLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// Partial unique index so a user can hold at most one pending plan
	// change request. GORM tags cannot express the WHERE clause.
	pendingIdx := `CREATE UNIQUE INDEX IF NOT EXISTS idx_plan_change_requests_pending
		ON plan_change_requests (user_id) WHERE status = 'pending';`
	if err := db.Exec(pendingIdx).Error; err != nil {
		color.Red("Error: failed to create pending request index: %v", err)
		os.Exit(1)
	}

	color.Green("Migration completed for %d tables.", len(models))
}
