package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimlens/internal/config"
	"claimlens/internal/domain"
	"claimlens/internal/handler"
	"claimlens/internal/router"
	"claimlens/internal/service"
	"claimlens/internal/store/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeExtraction struct {
	doc *domain.ExtractedDocument
	err error
}

func (f *fakeExtraction) Extract(context.Context, service.ExtractInput) (*domain.ExtractedDocument, error) {
	return f.doc, f.err
}

func (f *fakeExtraction) GetByID(context.Context, uuid.UUID) (*domain.ExtractedDocument, error) {
	return f.doc, f.err
}

func (f *fakeExtraction) List(context.Context, int, int) ([]domain.ExtractedDocument, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return []domain.ExtractedDocument{*f.doc}, 1, nil
}

type fakeAnswer struct {
	result *service.AskResult
	err    error
}

func (f *fakeAnswer) Ask(context.Context, uuid.UUID, string) (*service.AskResult, error) {
	return f.result, f.err
}

func newTestRouter(ext *fakeExtraction, ans *fakeAnswer) *gin.Engine {
	store := memory.NewDocumentStore()
	documentH := handler.NewDocumentHandler(ext, ans, service.NewExportService(store))
	healthH := handler.NewHealthHandler(store)
	return router.Setup(&config.Config{}, documentH, healthH)
}

func sampleDoc() *domain.ExtractedDocument {
	return &domain.ExtractedDocument{
		ID:       uuid.New(),
		FileName: "claim.png",
		Structure: domain.StructuredRecord{
			Patient:     domain.Patient{Name: "John Doe"},
			Diagnoses:   []string{"Malaria"},
			Medications: []domain.MedicationEntry{},
			Procedures:  []string{},
		},
	}
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestExtractEndpoint_Success(t *testing.T) {
	doc := sampleDoc()
	r := newTestRouter(&fakeExtraction{doc: doc}, &fakeAnswer{})

	body, contentType := multipartBody(t, "file", "claim.png", []byte("fake bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, doc.ID.String(), data["document_id"])
	structure := data["structure"].(map[string]interface{})
	patient := structure["patient"].(map[string]interface{})
	assert.Equal(t, "John Doe", patient["name"])
	assert.Nil(t, patient["age"])
}

func TestExtractEndpoint_MissingFile(t *testing.T) {
	r := newTestRouter(&fakeExtraction{}, &fakeAnswer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
}

func TestExtractEndpoint_UnsupportedType(t *testing.T) {
	r := newTestRouter(&fakeExtraction{err: domain.ErrUnsupportedFileType}, &fakeAnswer{})

	body, contentType := multipartBody(t, "file", "claim.txt", []byte("text"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")
}

func TestGetByIDEndpoint(t *testing.T) {
	doc := sampleDoc()
	r := newTestRouter(&fakeExtraction{doc: doc}, &fakeAnswer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+doc.ID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), doc.ID.String())
}

func TestGetByIDEndpoint_InvalidID(t *testing.T) {
	r := newTestRouter(&fakeExtraction{}, &fakeAnswer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}

func TestGetByIDEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(&fakeExtraction{err: domain.ErrDocumentNotFound}, &fakeAnswer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "DOCUMENT_NOT_FOUND")
}

func TestAskEndpoint(t *testing.T) {
	id := uuid.New()
	ans := &fakeAnswer{result: &service.AskResult{
		DocumentID: id,
		Question:   "What medication is used and why?",
		Answer:     "Paracetamol 500mg 10 tablets — used for fever and pain relief",
	}}
	r := newTestRouter(&fakeExtraction{}, ans)

	body := strings.NewReader(`{"document_id":"` + id.String() + `","question":"anything"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/ask", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "What medication is used and why?")
	assert.Contains(t, w.Body.String(), "fever and pain relief")
}

func TestAskEndpoint_MissingDocumentID(t *testing.T) {
	r := newTestRouter(&fakeExtraction{}, &fakeAnswer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/ask", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestExportEndpoint_CSV(t *testing.T) {
	r := newTestRouter(&fakeExtraction{}, &fakeAnswer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Document ID")
}

func TestExportEndpoint_InvalidFormat(t *testing.T) {
	r := newTestRouter(&fakeExtraction{}, &fakeAnswer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/export?format=pdf", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FORMAT")
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(&fakeExtraction{}, &fakeAnswer{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "documents_stored")

	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
