package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"claimlens/internal/export"
	"claimlens/internal/port"
)

// ExportService defines the export contract for extracted documents.
type ExportService interface {
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type exportService struct {
	store port.DocumentStore
}

// NewExportService creates a new ExportService implementation.
func NewExportService(store port.DocumentStore) ExportService {
	return &exportService{store: store}
}

func (s *exportService) ExportCSV(ctx context.Context, w io.Writer) error {
	docs, total, err := s.store.List(ctx, 0, 0)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if _, err := w.Write(export.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	writer := export.NewWriter(w)
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writer.WriteDocuments(docs); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	log.Printf("exportService.ExportCSV: exported %d document(s)", total)
	return nil
}

func (s *exportService) ExportXLSX(ctx context.Context, w io.Writer) error {
	docs, total, err := s.store.List(ctx, 0, 0)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if err := export.WriteXLSX(w, docs); err != nil {
		return err
	}

	log.Printf("exportService.ExportXLSX: exported %d document(s)", total)
	return nil
}
