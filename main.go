package main

import (
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/internal/util"
	"github.com/kirnik55/building-app/routes"
	"github.com/kirnik55/building-app/storage"
)

func envHours(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize the database connection on startup.
	database.Connect()

	database.ConnectRedis()

	if err := storage.Init(os.Getenv("UPLOAD_DIR")); err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set in the environment")
	}

	cfg := util.Config{
		AccessTokenSecret:      jwtSecret,
		RefreshTokenSecret:     jwtSecret,
		AccessTokenExpiryHour:  envHours("ACCESS_TOKEN_EXPIRY_HOUR", 24),
		RefreshTokenExpiryHour: envHours("REFRESH_TOKEN_EXPIRY_HOUR", 168),
	}

	app := fiber.New()
	routes.SetupRoutes(app, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
