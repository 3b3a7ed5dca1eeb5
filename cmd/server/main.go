package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/tahmid39/circle-help/backend/internal/handlers"
	"github.com/tahmid39/circle-help/backend/internal/router"
	"github.com/tahmid39/circle-help/backend/pkg/cloudinary"
	"github.com/tahmid39/circle-help/backend/pkg/config"
	"github.com/tahmid39/circle-help/backend/pkg/firebase"
	"github.com/tahmid39/circle-help/backend/validators"
)

func main() {
	// Load configuration
	config.LoadEnv()
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase; without credentials the API still runs with
	// local JWT auth only.
	ctx := context.Background()
	firebaseAuthClient, err := firebase.InitAuthClient(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Printf("Firebase disabled: %v", err)
		firebaseAuthClient = nil
	}

	// Initialize Cloudinary; without credentials uploads fail at request
	// time.
	var uploader handlers.Uploader
	if cfg.CloudinaryURL != "" {
		cloudinaryClient, err := cloudinary.NewClient(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("Failed to initialize Cloudinary: %v", err)
		}
		uploader = cloudinaryClient
	} else {
		log.Println("CLOUDINARY_URL not set, image uploads disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	config.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo.Database(cfg.MongoDatabase), firebaseAuthClient, uploader, cfg.JWTSecret)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
