package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/auth"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/config"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/jobs"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/logger"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/repository/firestoredb"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/scheduler"
	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-late-loans')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting loan sweeper...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize Firebase
	logger.Info("Connecting to Firestore...", "project_id", cfg.Firebase.ProjectID)
	app, err := auth.NewApp(ctx, cfg.Firebase)
	if err != nil {
		logger.Error("Failed to initialize Firebase app", "error", err)
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to create Firestore client", "error", err)
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()
	logger.Info("Firestore connection established")

	verifier, err := auth.NewVerifier(ctx, app)
	if err != nil {
		logger.Error("Failed to create token verifier", "error", err)
		log.Fatalf("Failed to create token verifier: %v", err)
	}

	// Initialize Repositories and Services
	store := firestoredb.NewStore(client)
	loanService := service.NewLoanService(store.LoanRepository, verifier)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(loanService, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Sweeper scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down sweeper scheduler...")
	cronScheduler.Stop()
	logger.Info("Sweeper scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "mark-late-loans":
		jobRunner.MarkLateLoans()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - mark-late-loans\n")
		os.Exit(1)
	}
}
