package db

import (
	"log"

	"dreamboard/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if err := SeedBoards(DB); err != nil {
		log.Fatalf("Failed to seed boards: %v", err)
	}
}

// Migrate is separate from Init so tests can run it against their own DB.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.Board{},
		&models.Thread{},
		&models.Post{},
		&models.UserVisit{},
	)
}

// SeedBoards creates the fixed board list. Safe to call on every startup:
// a board whose name already exists is skipped.
func SeedBoards(g *gorm.DB) error {
	boards := []models.Board{
		{Name: "Dreams General", Description: "A general board to tell about normal dreams.", IsStatic: true},
		{Name: "Sleep Paralysis", Description: "A board for sharing your sleep paralysis experiences.", IsStatic: true},
		{Name: "Nightmares", Description: "A board for sharing all types of nightmares.", IsStatic: true},
		{Name: "Lucid Dreaming", Description: "Share your lucid dreaming experiences and reality shifting techniques.", IsStatic: true},
		{Name: "Trip Reports", Description: "Share trip reports involving psychoactive substances.", IsStatic: true},
	}

	for _, board := range boards {
		var count int64
		if err := g.Model(&models.Board{}).Where("name = ?", board.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := g.Create(&board).Error; err != nil {
			return err
		}
	}
	return nil
}
