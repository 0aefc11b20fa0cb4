package port

import "context"

// RecognizeInput carries an uploaded file for text recognition.
type RecognizeInput struct {
	FileBytes   []byte
	FileName    string
	ContentType string
}

// TextRecognizer abstracts the external OCR collaborator: it turns an
// image or PDF into a single plain-text blob.
type TextRecognizer interface {
	Recognize(ctx context.Context, input RecognizeInput) (string, error)
}
