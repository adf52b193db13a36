package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"fitcoach/api"
	"fitcoach/client"
	"fitcoach/config"
	"fitcoach/database"
	"fitcoach/middleware"
	"fitcoach/repository"
	"fitcoach/services"
)

func main() {
	// Load application configuration
	config.LoadConfig()
	cfg := config.AppConfig

	// Initialize database connection (plan snapshots)
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}

	// Initialize Repositories
	chatRepo := repository.NewChatRepository()
	planRepo := repository.NewPlanRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Backend client; one value serves every client interface.
	backend := client.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	log.Printf("INFO: [Main] Backend client targeting %s.", cfg.Backend.BaseURL)

	// Initialize Services
	classifier, err := services.NewClassifier(cfg, backend)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize intent classifier: %v", err)
	}
	sessions := services.NewSessionService(nil)
	planService := services.NewPlanService(backend, planRepo)
	assessmentService := services.NewAssessmentService(chatRepo, backend)
	intentService := services.NewIntentService(chatRepo, sessions, planService, classifier)
	eventService := services.NewEventService(backend, cfg.CalendarName)
	trainingLogService := services.NewTrainingLogService(backend)
	progressService := services.NewProgressService(backend, backend)
	profileService := services.NewProfileService(backend, backend, backend)
	log.Println("INFO: [Main] Services initialized.")

	if cfg.Scheduler.Enabled {
		scheduler := services.NewRolloverScheduler(cfg.Scheduler.RolloverSpec, sessions, planService)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("FATAL: [Main] Failed to start rollover scheduler: %v", err)
		}
		defer scheduler.Stop()
	} else {
		log.Println("WARN: [Main] Rollover scheduler disabled; windows re-anchor on the next request instead.")
	}

	// Initialize API Handler with all dependencies
	apiHandler := api.NewAPIHandler(
		sessions,
		assessmentService,
		intentService,
		planService,
		eventService,
		trainingLogService,
		progressService,
		profileService,
		cfg.CalendarName,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	apiHandler.RegisterRoutes(r)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + cfg.Server.Port
	if cfg.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}
