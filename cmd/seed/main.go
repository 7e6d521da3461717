package main

import (
	"context"
	"log"

	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

var seedCategories = []string{"Political", "Entertainment", "Geographical", "Sports"}

var seedNews = []model.News{
	{
		Title:    "Elections Coming Soon",
		Content:  "The national elections are scheduled for next month.",
		Category: "Political",
	},
	{
		Title:    "Movie Release",
		Content:  "A new blockbuster movie is releasing this weekend.",
		Category: "Entertainment",
	},
	{
		Title:    "Floods in Punjab",
		Content:  "Heavy rainfall has caused floods in several areas.",
		Category: "Geographical",
	},
	{
		Title:    "Cricket Tournament",
		Content:  "The championship final will be played tomorrow.",
		Category: "Sports",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Category{}, &model.News{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Clear old data
	if err := gormDB.Where("1 = 1").Delete(&model.News{}).Error; err != nil {
		log.Fatalf("Failed to clear news: %v", err)
	}
	if err := gormDB.Where("1 = 1").Delete(&model.Category{}).Error; err != nil {
		log.Fatalf("Failed to clear categories: %v", err)
	}

	categoryRepo := repository.NewCategoryRepository(gormDB)
	newsRepo := repository.NewNewsRepository(gormDB)
	ctx := context.Background()

	for _, name := range seedCategories {
		if err := categoryRepo.Create(ctx, &model.Category{Name: name}); err != nil {
			log.Fatalf("Failed to seed category %q: %v", name, err)
		}
	}
	log.Printf("Categories seeded: %d", len(seedCategories))

	for i := range seedNews {
		if err := newsRepo.Create(ctx, &seedNews[i]); err != nil {
			log.Fatalf("Failed to seed news %q: %v", seedNews[i].Title, err)
		}
	}
	log.Printf("News seeded: %d", len(seedNews))

	log.Println("Seed completed successfully!")
}
