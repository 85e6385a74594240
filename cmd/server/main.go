package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alphacloud/assessment-portal/internal/api"
	"alphacloud/assessment-portal/internal/auth"
	"alphacloud/assessment-portal/internal/config"
	"alphacloud/assessment-portal/internal/repository/mongo"
	"alphacloud/assessment-portal/internal/service"
	"alphacloud/assessment-portal/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Assessment Portal Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureAssessmentIndexes(ctx, appDB.Collection("assessments"))
		mongo.EnsureUploadedFileIndexes(ctx, appDB.Collection("uploaded_files"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("questionnaire_templates"))
		mongo.EnsureNotificationIndexes(ctx, appDB.Collection("email_notifications"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	assessmentRepo := mongo.NewMongoAssessmentRepository(appDB)
	fileRepo := mongo.NewMongoUploadedFileRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	notificationRepo := mongo.NewMongoNotificationRepository(appDB)

	// --- Token Codec ---
	var codec auth.TokenCodec
	if cfg.Auth.Scheme == "signed" {
		codec = auth.NewSignedCodec(cfg.Auth.Secret)
		log.Println("Using signed token codec.")
	} else {
		codec = auth.NewUnsignedCodec()
		log.Println("Using legacy unsigned token codec.")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(codec, cfg.Auth)
	questionnaireService := service.NewQuestionnaireService(assessmentRepo, fileRepo, fileStorage)
	reviewService := service.NewReviewService(assessmentRepo)
	uploadService := service.NewUploadService(assessmentRepo, fileRepo, fileStorage)
	templateService := service.NewTemplateService(templateRepo)
	notificationService := service.NewNotificationService(notificationRepo, cfg.Notifications)
	reportService := service.NewReportService(assessmentRepo, fileRepo, fileStorage, cfg.Notifications.ClientName)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router,
		codec,
		cfg.Auth.DefaultClientID,
		authService,
		questionnaireService,
		reviewService,
		uploadService,
		templateService,
		notificationService,
		reportService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
