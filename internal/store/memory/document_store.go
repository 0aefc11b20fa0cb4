// Package memory provides the default DocumentStore: a process-wide
// map with no persistence, matching the service's original in-memory
// contract. Insertion order is preserved for listing.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"claimlens/internal/domain"
	"claimlens/internal/port"
)

type documentStore struct {
	mu    sync.RWMutex
	docs  map[uuid.UUID]domain.ExtractedDocument
	order []uuid.UUID
}

// NewDocumentStore creates an empty in-memory DocumentStore.
func NewDocumentStore() port.DocumentStore {
	return &documentStore{docs: make(map[uuid.UUID]domain.ExtractedDocument)}
}

func (s *documentStore) Put(_ context.Context, doc *domain.ExtractedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.docs[doc.ID] = *doc
	return nil
}

func (s *documentStore) GetByID(_ context.Context, id uuid.UUID) (*domain.ExtractedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &doc, nil
}

func (s *documentStore) List(_ context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.order)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.ExtractedDocument{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	docs := make([]domain.ExtractedDocument, 0, end-offset)
	for _, id := range s.order[offset:end] {
		docs = append(docs, s.docs[id])
	}
	return docs, total, nil
}

func (s *documentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}
