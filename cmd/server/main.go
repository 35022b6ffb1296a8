package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/vytor/lingualearn/internal/api"
	"github.com/vytor/lingualearn/internal/config"
	"github.com/vytor/lingualearn/internal/db"
	"github.com/vytor/lingualearn/internal/flashcard"
	"github.com/vytor/lingualearn/internal/importer"
	"github.com/vytor/lingualearn/internal/jobs"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/offline"
	"github.com/vytor/lingualearn/internal/repository/sqlite"
	"github.com/vytor/lingualearn/internal/scheduler"
	"github.com/vytor/lingualearn/internal/services"
	"github.com/vytor/lingualearn/internal/worker"
)

func main() {
	envFile := pflag.String("env-file", "", "load configuration from this .env file instead of ./.env")
	seed := pflag.Bool("seed", false, "insert the starter lessons before serving")
	importPath := pflag.String("import", "", "import lessons from an .xlsx or .csv file before serving")
	pflag.Parse()

	var cfg config.Config
	if *envFile != "" {
		cfg = config.Load(*envFile)
	} else {
		cfg = config.Load()
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("LinguaLearn Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("offline_cache_path=%s", cfg.OfflineCachePath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("sync_worker_count=%d", cfg.SyncWorkerCount)
	log.Debug("sync_queue_size=%d", cfg.SyncQueueSize)
	log.Debug("sync_interval=%s", cfg.SyncInterval)
	log.Debug("quiz_passing_score=%d", cfg.QuizPassingScore)
	log.Debug("quiz_option_count=%d", cfg.QuizOptionCount)
	log.Debug("due_limit=%d", cfg.DueLimit)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// The app keeps running without a cache; it just loses the fallback.
	var cache services.OfflineCache
	store, err := offline.Open(cfg.OfflineCachePath)
	if err != nil {
		log.Warn("offline cache disabled: %v", err)
	} else {
		cache = store
		defer store.Close()
	}

	userRepo := sqlite.NewUserRepository(database.DB)
	lessonRepo := sqlite.NewLessonRepository(database.DB)
	cardRepo := sqlite.NewFlashcardRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	clock := flashcard.SystemClock{}

	userService := services.NewUserService(userRepo, cache)
	lessonService := services.NewLessonService(lessonRepo, cache)
	flashcardService := services.NewFlashcardService(cardRepo, lessonRepo, cache, clock, cfg.DueLimit)
	progressService := services.NewProgressService(progressRepo, userRepo, cache, clock)
	quizService := services.NewQuizService(lessonRepo, cache, progressService, services.QuizConfig{
		PassingScore: cfg.QuizPassingScore,
		OptionCount:  cfg.QuizOptionCount,
	}, rand.New(rand.NewSource(time.Now().UnixNano())))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *seed {
		n, err := lessonService.SeedLessons(ctx)
		if err != nil {
			log.Error("failed to seed lessons: %v", err)
			os.Exit(1)
		}
		log.Info("seeded %d starter lessons", n)
	}
	if *importPath != "" {
		result, err := importer.New(lessonService).ImportFile(ctx, *importPath)
		if err != nil {
			log.Error("failed to import lessons: %v", err)
			os.Exit(1)
		}
		log.Info("imported %d lessons from %s (%d skipped)", result.Imported, *importPath, result.Skipped)
	}

	syncPool := worker.NewPool(cfg.SyncWorkerCount, cfg.SyncQueueSize)
	jobQueue := jobs.NewWorkerQueue(syncPool, progressService)
	syncScheduler := scheduler.New(userService, jobQueue, cfg.SyncInterval)

	srv := &api.Server{
		DB:               database,
		UserService:      userService,
		LessonService:    lessonService,
		FlashcardService: flashcardService,
		QuizService:      quizService,
		ProgressService:  progressService,
		JobQueue:         jobQueue,
	}

	syncPool.Start(ctx)
	if err := syncScheduler.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping scheduler")
	syncScheduler.Stop()

	// Queued syncs are drained before the database closes.
	log.Debug("stopping sync pool")
	syncPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("LinguaLearn Server Stopped")
	log.Info("===========================================")
}
