package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"notiguard/internal/assistant"
	"notiguard/internal/completion"
	"notiguard/internal/config"
	"notiguard/internal/db"
	"notiguard/internal/email"
	"notiguard/internal/jobs"
	"notiguard/internal/metrics"
	"notiguard/internal/routing"
	"notiguard/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	departments, err := config.LoadDepartments(cfg.DepartmentsFile)
	if err != nil {
		log.Fatalf("Failed to load departments: %v", err)
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.SeedDevData {
		if err := database.SeedDevData(ctx); err != nil {
			log.Printf("Warning: failed to seed dev data: %v", err)
		}
	}

	metrics.Init(database)

	completer, err := completion.New(ctx, cfg.Completion())
	if err != nil {
		log.Fatalf("Failed to create completion client: %v", err)
	}
	if cfg.CompletionAPIKey == "" {
		log.Println("Warning: COMPLETION_API_KEY is not set, every answer will report a missing credential")
	}

	asst := assistant.New(database, completer, assistant.Options{
		NoticeLimit: cfg.ContextNoticeLimit,
		BodyLimit:   cfg.ContextBodyLimit,
		Router:      routing.New(departments),
	})

	notifier := email.NewNotifier(cfg, departments)

	// Pending inquiry digest
	if cfg.IsDigestEnabled() {
		digest, err := jobs.NewInquiryDigest(database, notifier, cfg.InquiryDigestTime, cfg.Timezone)
		if err != nil {
			log.Fatalf("Failed to configure inquiry digest: %v", err)
		}
		go func() {
			if err := digest.Start(ctx); err != nil {
				log.Printf("Inquiry digest error: %v", err)
			}
		}()
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, asst, notifier, departments); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	<-ctx.Done()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
