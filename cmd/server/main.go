package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"radarboard/internal/auth"
	"radarboard/internal/config"
	"radarboard/internal/database"
	"radarboard/internal/handlers"
	"radarboard/internal/middleware"
	"radarboard/internal/models"
	"radarboard/internal/realtime"
	"radarboard/internal/repositories"
	"radarboard/internal/services"
	"radarboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// =========================================================================
	// Load configuration
	// =========================================================================
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Logger
	// =========================================================================
	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// =========================================================================
	// Database
	// =========================================================================
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Auto migrate in development mode
	if cfg.App.IsDevelopment() {
		if err := database.AutoMigrate(db); err != nil {
			log.Warn("auto migrate failed", zap.Error(err))
		} else {
			log.Info("database auto migration completed")
		}
	}

	// Background workers share one context cancelled on shutdown
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	healthWatcher := database.NewHealthWatcher(db, cfg.Health.PingInterval, log)
	go healthWatcher.Start(workerCtx)

	// =========================================================================
	// Repositories
	// =========================================================================
	noteRepo := repositories.NewNoteRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	annotationRepo := repositories.NewAnnotationRepository(db)
	storageRepo := repositories.NewStorageRepository(db)
	userRepo := repositories.NewUserRepository(db)
	messageRepo := repositories.NewPrivateMessageRepository(db)

	log.Info("repositories initialized")

	// =========================================================================
	// Realtime: in-process hubs + Centrifugo publisher
	// =========================================================================
	noteHub := realtime.NewHub[models.Note]()
	taskHub := realtime.NewHub[models.Task]()
	annotationHub := realtime.NewHub[models.Annotation]()
	storageHub := realtime.NewHub[models.StorageSelection]()

	var publisher realtime.Publisher
	if cfg.Centrifugo.URL != "" && cfg.Centrifugo.APIKey != "" {
		publisher = realtime.NewCentrifugoClient(cfg.Centrifugo.URL, cfg.Centrifugo.APIKey, log)
		log.Info("centrifugo publisher initialized", zap.String("url", cfg.Centrifugo.URL))
	} else {
		publisher = realtime.NewNoopPublisher()
		log.Warn("centrifugo not configured, using noop publisher")
	}

	// =========================================================================
	// Services
	// =========================================================================
	noteService := services.NewNoteService(noteRepo, noteHub, publisher, log)
	taskService := services.NewTaskService(taskRepo, taskHub, log)
	annotationService := services.NewAnnotationService(annotationRepo, annotationHub, publisher, log)
	storageService := services.NewStorageService(storageRepo, storageHub, publisher, log)
	chatService := services.NewChatService(messageRepo, publisher, log)
	userService := services.NewUserService(userRepo)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := services.NewAuthService(userRepo, jwtService, log)

	sweeper := services.NewRetentionSweeper(cfg.Retention, map[string]repositories.Purger{
		"anotacoes":        noteRepo,
		"tarefas":          taskRepo,
		"anotacoes_gerais": annotationRepo,
	}, log)
	go sweeper.Run(workerCtx)

	log.Info("services initialized")

	// =========================================================================
	// Handlers
	// =========================================================================
	authHandler := handlers.NewAuthHandler(authService, log)
	noteHandler := handlers.NewNoteHandler(noteService, log)
	taskHandler := handlers.NewTaskHandler(taskService, log)
	annotationHandler := handlers.NewAnnotationHandler(annotationService, log)
	storageHandler := handlers.NewStorageHandler(storageService, log)
	chatHandler := handlers.NewChatHandler(chatService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	healthHandler := handlers.NewHealthHandler(healthWatcher)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	log.Info("handlers initialized")

	// =========================================================================
	// Gin Router
	// =========================================================================
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logging(log))
	router.Use(middleware.CORS([]string{"*"}))
	// CSRF protection - exempt auth and health routes
	router.Use(middleware.CSRFMiddlewareWithExempt([]string{
		"/api/v1/auth/",
		"/health",
	}))

	healthHandler.RegisterRoutes(router)

	// =========================================================================
	// API Routes
	// =========================================================================
	api := router.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		authHandler.RegisterRoutes(api, authMiddleware)
		noteHandler.RegisterRoutes(api, authMiddleware)
		taskHandler.RegisterRoutes(api, authMiddleware)
		annotationHandler.RegisterRoutes(api, authMiddleware)
		storageHandler.RegisterRoutes(api, authMiddleware)
		chatHandler.RegisterRoutes(api, authMiddleware)
		userHandler.RegisterRoutes(api, authMiddleware)
	}

	log.Info("routes registered",
		zap.Strings("endpoints", []string{
			"/api/v1/notes",
			"/api/v1/tasks",
			"/api/v1/annotations",
			"/api/v1/storage",
			"/api/v1/chat/messages",
			"/api/v1/users",
		}),
	)

	// =========================================================================
	// HTTP Server
	// =========================================================================
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// =========================================================================
	// Graceful Shutdown
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
