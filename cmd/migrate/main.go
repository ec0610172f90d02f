package main

import (
	"log"

	"conference-review-api/config"
	"conference-review-api/models"

	"github.com/joho/godotenv"
)

// Creates or updates the schema, including the unique indexes the workflow
// relies on: one preference and one assignment per (reviewer, submission),
// one review per assignment, one decision per submission.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	err := config.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Preference{},
		&models.Assignment{},
		&models.Review{},
		&models.Decision{},
		&models.DiscussionMessage{},
		&models.RebuttalMessage{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Migration completed")
}
