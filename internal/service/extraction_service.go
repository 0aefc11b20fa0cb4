package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"claimlens/internal/config"
	"claimlens/internal/domain"
	"claimlens/internal/extract"
	"claimlens/internal/port"
)

// ExtractInput is the DTO for document extraction requests.
type ExtractInput struct {
	FileName    string
	ContentType string
	FileBytes   []byte
}

// ExtractionService defines the document extraction contract.
type ExtractionService interface {
	Extract(ctx context.Context, input ExtractInput) (*domain.ExtractedDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractedDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error)
}

type extractionService struct {
	store      port.DocumentStore
	recognizer port.TextRecognizer
	storage    port.ObjectStorage // nil when archiving is disabled
	s3cfg      *config.S3Config
	uploadCfg  *config.UploadConfig
	pipeline   *extract.Pipeline
}

// NewExtractionService creates a new ExtractionService implementation.
// storage may be nil, in which case uploads are not archived.
func NewExtractionService(
	store port.DocumentStore,
	recognizer port.TextRecognizer,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
	uploadCfg *config.UploadConfig,
	pipeline *extract.Pipeline,
) ExtractionService {
	return &extractionService{
		store:      store,
		recognizer: recognizer,
		storage:    storage,
		s3cfg:      s3cfg,
		uploadCfg:  uploadCfg,
		pipeline:   pipeline,
	}
}

func (s *extractionService) Extract(ctx context.Context, input ExtractInput) (*domain.ExtractedDocument, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if int64(len(input.FileBytes)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte content type detection on the first 512 bytes
	head := input.FileBytes
	if len(head) > 512 {
		head = head[:512]
	}
	detectedType := http.DetectContentType(head)
	if _, valid := domain.AllowedContentTypes[detectedType]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}

	contentType := domain.AllowedFileTypes[fileType]

	log.Printf("extractionService.Extract: processing %s (%s, %d bytes)",
		input.FileName, contentType, len(input.FileBytes))

	text, err := s.recognizer.Recognize(ctx, port.RecognizeInput{
		FileBytes:   input.FileBytes,
		FileName:    input.FileName,
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("extractionService.Extract: recognition failed for %s: %v", input.FileName, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	doc := &domain.ExtractedDocument{
		ID:          uuid.New(),
		FileName:    input.FileName,
		ContentType: contentType,
		RawText:     text,
		Structure:   s.pipeline.RunText(text),
		CreatedAt:   time.Now().UTC(),
	}

	// Archive the original upload when a bucket is configured. Failures
	// are logged, not fatal: the extraction result is the product.
	if s.storage != nil && s.s3cfg.Bucket != "" {
		key := fmt.Sprintf("documents/%s/%s", doc.ID, input.FileName)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3cfg.Bucket,
			Key:         key,
			Body:        bytes.NewReader(input.FileBytes),
			ContentType: contentType,
			Size:        int64(len(input.FileBytes)),
		})
		if err != nil {
			log.Printf("extractionService.Extract: archiving %s failed: %v", key, err)
		}
	}

	if err := s.store.Put(ctx, doc); err != nil {
		log.Printf("extractionService.Extract: storing document %s failed: %v", doc.ID, err)
		return nil, fmt.Errorf("storing document: %w", err)
	}

	return doc, nil
}

func (s *extractionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractedDocument, error) {
	return s.store.GetByID(ctx, id)
}

func (s *extractionService) List(ctx context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error) {
	return s.store.List(ctx, offset, limit)
}
