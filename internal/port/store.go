package port

import (
	"context"

	"github.com/google/uuid"

	"claimlens/internal/domain"
)

// DocumentStore defines the contract for extracted-document storage.
// The extraction core stays a pure function; the store's lifecycle
// (process-wide map or durable backend) is the implementation's
// concern.
type DocumentStore interface {
	Put(ctx context.Context, doc *domain.ExtractedDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractedDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error)
	Count(ctx context.Context) (int, error)
}
