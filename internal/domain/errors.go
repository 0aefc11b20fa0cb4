package domain

import "errors"

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrOCRFailed           = errors.New("text recognition failed")
	ErrEmptyDocument       = errors.New("document contains no recognizable text")
)
