package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordgrid/internal/config"
	"wordgrid/internal/crossword"
	"wordgrid/internal/database"
	"wordgrid/internal/handlers"
	"wordgrid/internal/models"
	"wordgrid/internal/repository"
	"wordgrid/internal/security"
	"wordgrid/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	bankRepo := repository.NewBankRepository(db)
	clueRepo := repository.NewClueRepository(db)
	puzzleRepo := repository.NewPuzzleRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Make sure the canonical difficulty tiers exist before seeding
	if err := bankRepo.EnsureDifficulties(models.DefaultDifficulties()); err != nil {
		log.Fatalf("Failed to ensure difficulty tiers: %v", err)
	}

	// Initialize services
	bankService := service.NewBankService(bankRepo, clueRepo)
	puzzleService := service.NewPuzzleService(bankRepo, puzzleRepo)
	crosswordService := service.NewCrosswordService(clueRepo, puzzleRepo, cfg.CrosswordSize)
	authService := service.NewAuthService(adminRepo, cfg.JWTSecret, cfg.TokenDuration)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Seed word and clue banks from files on first run
	if err := bankService.SeedIfEmpty(cfg.WordBankPath, cfg.PrimaryCluesPath, cfg.SecondaryCluesPath, crossword.ValidWord); err != nil {
		log.Printf("Warning: Failed to seed word banks: %v", err)
	}

	// Create the bootstrap admin account if configured
	if authService.Enabled() && cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureBootstrapAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Printf("Warning: Failed to create bootstrap admin: %v", err)
		}
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(60, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)
	puzzleHandler := handlers.NewPuzzleHandler(puzzleService)
	crosswordHandler := handlers.NewCrosswordHandler(crosswordService)
	authHandler := handlers.NewAuthHandler(authService)
	bankHandler := handlers.NewBankHandler(bankService, bankRepo, puzzleService, emailService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/connections", middleware.RateLimit(puzzleHandler.Generate))
	mux.HandleFunc("GET /api/connections/daily", middleware.RateLimit(puzzleHandler.Daily))
	mux.HandleFunc("GET /api/connections/{id}", middleware.RateLimit(puzzleHandler.GetByID))
	mux.HandleFunc("GET /api/mini", middleware.RateLimit(crosswordHandler.Generate))
	mux.HandleFunc("GET /api/mini.puz", middleware.RateLimit(crosswordHandler.Download))

	// Admin routes
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /api/admin/bank", middleware.RequireAdmin(bankHandler.ExportBank))
	mux.HandleFunc("POST /api/admin/bank/categories", middleware.RequireAdmin(bankHandler.CreateCategory))
	mux.HandleFunc("POST /api/admin/bank/categories/{id}/words", middleware.RequireAdmin(bankHandler.AddWords))
	mux.HandleFunc("DELETE /api/admin/bank/categories/{id}", middleware.RequireAdmin(bankHandler.DeleteCategory))
	mux.HandleFunc("POST /api/admin/share", middleware.RequireAdmin(bankHandler.SharePuzzle))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background puzzle cleanup
	go purgeOldPuzzles(puzzleService, cfg.PuzzleRetention)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Warning: Server shutdown failed: %v", err)
	}
}

// purgeOldPuzzles periodically deletes stored puzzles past the retention
// window
func purgeOldPuzzles(puzzleService *service.PuzzleService, retention time.Duration) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		deleted, err := puzzleService.PurgeOldPuzzles(retention)
		if err != nil {
			log.Printf("Warning: Failed to purge old puzzles: %v", err)
			continue
		}
		if deleted > 0 {
			log.Printf("Purged %d old puzzles", deleted)
		}
	}
}
