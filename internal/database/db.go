package database

import (
	"log"

	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	// Migration: This creates the tables in Postgres automatically
	log.Println("Running Migrations...")
	db.AutoMigrate(&models.User{}, &models.Company{}, &models.Job{}, &models.JobEvent{})
	return db
}
