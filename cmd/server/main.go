package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"newsroom/internal/auth"
	"newsroom/internal/cache"
	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/handler"
	"newsroom/internal/model"
	"newsroom/internal/render"
	"newsroom/internal/repository"
	"newsroom/internal/router"
	"newsroom/internal/service"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.News{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.News{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Fatalf("redis init: %v", err)
	}
	defer cacheClient.Close()

	sessions := auth.NewSessionStore(cacheClient, cfg.SessionTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	newsRepo := repository.NewNewsRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions, service.AdminIdentity{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	newsService := service.NewNewsService(categoryRepo, newsRepo)

	// Converge the bootstrap admin before serving; failures are logged but
	// never block startup.
	created, err := authService.EnsureAdmin(context.Background())
	switch {
	case err != nil:
		log.Printf("Error ensuring admin: %v", err)
	case created:
		log.Printf("Default admin created: %s", cfg.AdminEmail)
	default:
		log.Println("Admin already exists")
	}

	renderer, err := render.New(cfg.TemplatesDir)
	if err != nil {
		log.Fatalf("renderer init: %v", err)
	}
	e.Renderer = renderer

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	newsHandler := handler.NewNewsHandler(newsService, sessions)

	router.Register(e, sessions, authHandler, newsHandler)

	log.Printf("Server running on http://localhost:%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
