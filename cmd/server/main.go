package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"equitylens/internal/config"
	"equitylens/internal/decode"
	"equitylens/internal/handler"
	"equitylens/internal/port"
	"equitylens/internal/repository/memory"
	"equitylens/internal/repository/postgres"
	"equitylens/internal/router"
	"equitylens/internal/service"
	s3storage "equitylens/internal/storage/s3"
	"equitylens/internal/vision"
	"equitylens/internal/vision/providers"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repository
	var repo port.AnalysisRepository
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		repo = postgres.NewAnalysisRepo(db)
	} else {
		log.Printf("database disabled; keeping analysis history in memory")
		repo = memory.NewAnalysisRepo(0)
	}

	// Initialize storage
	var storage port.ObjectStorage
	if cfg.S3.Enabled {
		archive, err := s3storage.NewArchive(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
		storage = archive
	}

	// Initialize vision providers
	providers.RegisterAll()
	visionClient, err := vision.NewChain(&cfg.Vision)
	if err != nil {
		return fmt.Errorf("failed to initialize vision providers: %w", err)
	}
	if visionClient == nil {
		log.Printf("no vision provider configured; PDFs and images use the table decoders only")
	}
	adapter := vision.NewAdapter(visionClient, cfg.Vision.Timeout())

	// Initialize services
	intake := service.NewIntake(adapter, decode.NewRegistry())
	statementSvc := service.NewStatementService(intake, repo, storage, service.StatementServiceConfig{
		MaxFileSize:   cfg.Upload.MaxBytes(),
		Bucket:        cfg.S3.Bucket,
		PresignExpiry: cfg.S3.PresignExpiry,
	})

	// Initialize handlers
	statementH := handler.NewStatementHandler(statementSvc, cfg.Upload.MaxBytes())
	healthH := handler.NewHealthHandler(statementSvc)

	// Setup router
	r := router.Setup(statementH, healthH, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxFileSize:    cfg.Upload.MaxBytes(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
