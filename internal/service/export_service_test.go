package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"claimlens/internal/domain"
	"claimlens/internal/export"
	"claimlens/internal/port"
	"claimlens/internal/store/memory"
)

func seededStore(t *testing.T) (port.DocumentStore, *domain.ExtractedDocument) {
	t.Helper()
	store := memory.NewDocumentStore()
	amount := "₦5,000"
	doc := &domain.ExtractedDocument{
		ID:       uuid.New(),
		FileName: "claim.pdf",
		Structure: domain.StructuredRecord{
			Patient:     domain.Patient{Name: "John Doe"},
			TotalAmount: &amount,
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Put(context.Background(), doc))
	return store, doc
}

func TestExportCSV(t *testing.T) {
	store, doc := seededStore(t)
	svc := NewExportService(store)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, export.BOM))

	rows, err := csv.NewReader(bytes.NewReader(raw[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Document ID", rows[0][0])
	assert.Equal(t, doc.ID.String(), rows[1][0])
	assert.Equal(t, "John Doe", rows[1][2])
	assert.Equal(t, "₦5,000", rows[1][11])
}

func TestExportXLSX(t *testing.T) {
	store, _ := seededStore(t)
	svc := NewExportService(store)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Documents", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Document ID", header)

	name, err := f.GetCellValue("Documents", "C2")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", name)
}
