package main

import (
	"fmt"
	"log"

	"claimlens/internal/config"
	"claimlens/internal/domain"
	"claimlens/internal/extract"
	"claimlens/internal/handler"
	"claimlens/internal/ocr"
	"claimlens/internal/port"
	"claimlens/internal/router"
	"claimlens/internal/service"
	"claimlens/internal/store/memory"
	"claimlens/internal/store/postgres"
	s3storage "claimlens/internal/storage/s3"
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

	// Initialize document store
	var store port.DocumentStore
	switch domain.StoreBackend(cfg.Store.Backend) {
	case domain.StoreBackendMemory:
		store = memory.NewDocumentStore()
		log.Println("using in-memory document store")
	case domain.StoreBackendPostgres:
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		store = postgres.NewDocumentStore(db)
		log.Println("using postgres document store")
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	// Initialize upload archiving (optional)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Printf("archiving uploads to s3://%s", cfg.S3.Bucket)
	}

	// Initialize OCR
	recognizer := ocr.NewRecognizer(&cfg.OCR, ocr.NewExecRunner())

	// Initialize services
	extractionSvc := service.NewExtractionService(
		store, recognizer, storage, &cfg.S3, &cfg.Upload, extract.NewPipeline())
	answerSvc := service.NewAnswerService(extractionSvc)
	exportSvc := service.NewExportService(store)

	// Initialize handlers
	documentH := handler.NewDocumentHandler(extractionSvc, answerSvc, exportSvc)
	healthH := handler.NewHealthHandler(store)

	// Setup router
	r := router.Setup(cfg, documentH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
