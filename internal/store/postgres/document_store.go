package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimlens/internal/domain"
	"claimlens/internal/port"
)

type documentStore struct {
	db *sqlx.DB
}

// NewDocumentStore creates a PostgreSQL-backed DocumentStore.
func NewDocumentStore(db *sqlx.DB) port.DocumentStore {
	return &documentStore{db: db}
}

// documentRow is the flat row shape; the structured record lives in a
// JSONB column.
type documentRow struct {
	ID          uuid.UUID       `db:"id"`
	FileName    string          `db:"file_name"`
	ContentType string          `db:"content_type"`
	RawText     string          `db:"raw_text"`
	Structure   json.RawMessage `db:"structure"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r *documentRow) toDomain() (*domain.ExtractedDocument, error) {
	doc := &domain.ExtractedDocument{
		ID:          r.ID,
		FileName:    r.FileName,
		ContentType: r.ContentType,
		RawText:     r.RawText,
		CreatedAt:   r.CreatedAt,
	}
	if err := json.Unmarshal(r.Structure, &doc.Structure); err != nil {
		return nil, fmt.Errorf("unmarshaling structure: %w", err)
	}
	return doc, nil
}

func (s *documentStore) Put(ctx context.Context, doc *domain.ExtractedDocument) error {
	structure, err := json.Marshal(doc.Structure)
	if err != nil {
		return fmt.Errorf("documentStore.Put marshal: %w", err)
	}

	query := `INSERT INTO extracted_documents (
		id, file_name, content_type, raw_text, structure, created_at
	) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		file_name = EXCLUDED.file_name,
		content_type = EXCLUDED.content_type,
		raw_text = EXCLUDED.raw_text,
		structure = EXCLUDED.structure`

	_, err = s.db.ExecContext(ctx, query,
		doc.ID, doc.FileName, doc.ContentType, doc.RawText, structure, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentStore.Put: %w", err)
	}
	return nil
}

func (s *documentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractedDocument, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row,
		"SELECT * FROM extracted_documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentStore.GetByID: %w", err)
	}
	return row.toDomain()
}

func (s *documentStore) List(ctx context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error) {
	var total int
	err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extracted_documents")
	if err != nil {
		return nil, 0, fmt.Errorf("documentStore.List count: %w", err)
	}

	query := "SELECT * FROM extracted_documents ORDER BY created_at ASC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	} else if offset > 0 {
		query += " OFFSET $1"
		args = append(args, offset)
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentStore.List: %w", err)
	}

	docs := make([]domain.ExtractedDocument, 0, len(rows))
	for i := range rows {
		doc, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("documentStore.List row %s: %w", rows[i].ID, err)
		}
		docs = append(docs, *doc)
	}
	return docs, total, nil
}

func (s *documentStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extracted_documents"); err != nil {
		return 0, fmt.Errorf("documentStore.Count: %w", err)
	}
	return total, nil
}
