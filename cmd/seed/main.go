package main

import (
	"log"
	"os"

	"contractvault-be/internal/model"
	"contractvault-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
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

	color.Cyan("Seeding plan catalogue...")

	plans := []model.Plan{
		{Name: "Starter", UploadsAllowed: 5, RefinesAllowed: 10, AnalysesAllowed: 3},
		{Name: "Professional", UploadsAllowed: 50, RefinesAllowed: 200, AnalysesAllowed: 50},
		{Name: "Business", UploadsAllowed: 500, RefinesAllowed: 2000, AnalysesAllowed: 500},
	}

	for _, p := range plans {
		var existing model.Plan
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			color.Yellow("Plan '%s' already exists, skipping...", p.Name)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Name, err)
		} else {
			color.Green("Created plan: %s", p.Name)
		}
	}

	color.Cyan("Seeding admin account...")

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@contractvault.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme"
		color.Yellow("ADMIN_PASSWORD not set, using the default. Change it after first login.")
	}

	var existing model.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		color.Yellow("Admin '%s' already exists, skipping...", adminEmail)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			color.Red("Error hashing admin password: %v", err)
			os.Exit(1)
		}
		hashStr := string(hash)
		admin := model.User{
			Email:        adminEmail,
			PasswordHash: &hashStr,
			Name:         "Administrator",
			Role:         "admin",
			Type:         "person",
		}
		if err := db.Create(&admin).Error; err != nil {
			color.Red("Error creating admin user: %v", err)
			os.Exit(1)
		}
		color.Green("Created admin user: %s", adminEmail)
	}

	color.Green("Seeding completed.")
}
