package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/tahmid39/circle-help/backend/internal/handlers"
	"github.com/tahmid39/circle-help/backend/internal/middleware"
	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgdb *mongo.Database, firebaseAuthClient *auth.Client, uploader handlers.Uploader, jwtSecret string) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.Payment{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(mgdb)
	postRepo := repositories.NewMongoPostRepository(mgdb)
	voteRepo := repositories.NewMongoVoteRepository(mgdb)
	commentRepo := repositories.NewMongoCommentRepository(mgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgdb)
	savedPostRepo := repositories.NewMongoSavedPostRepository(mgdb)
	viewedPostRepo := repositories.NewMongoViewedPostRepository(mgdb)
	paymentRepo := repositories.NewPostgresPaymentRepository(pgdb)

	// --- Unauthenticated service endpoints ---
	uploadHandler := handlers.NewUploadHandler(uploader)
	uploadHandler.RegisterUploadRoutes(e)
	log.Println("Upload routes configured.")

	analyticsHandler := handlers.NewAnalyticsHandler(paymentRepo)
	analyticsHandler.RegisterAnalyticsRoutes(e)
	log.Println("Analytics routes configured.")

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(firebaseAuthClient, jwtSecret))
	log.Println("Authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, commentRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	feedHandler := handlers.NewFeedHandler(postRepo, savedPostRepo, viewedPostRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	voteHandler := handlers.NewVoteHandler(voteRepo, postRepo)
	voteHandler.RegisterVoteRoutes(api)
	log.Println("Vote routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	savedPostHandler := handlers.NewSavedPostHandler(savedPostRepo, postRepo)
	savedPostHandler.RegisterSavedPostRoutes(api)
	log.Println("Saved post routes configured.")

	log.Println("All routes configured.")
}
