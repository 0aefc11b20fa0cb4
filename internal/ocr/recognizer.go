package ocr

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"claimlens/internal/config"
	"claimlens/internal/port"
)

// recognizer implements port.TextRecognizer by shelling out to
// tesseract (and pdftoppm for PDF inputs).
type recognizer struct {
	cfg    *config.OCRConfig
	runner Runner
}

// NewRecognizer creates a TextRecognizer backed by external OCR
// binaries configured in cfg.
func NewRecognizer(cfg *config.OCRConfig, runner Runner) port.TextRecognizer {
	return &recognizer{cfg: cfg, runner: runner}
}

func (r *recognizer) Recognize(ctx context.Context, input port.RecognizeInput) (string, error) {
	if r.cfg.TimeoutSecs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutSecs)*time.Second)
		defer cancel()
	}

	tmpDir, err := os.MkdirTemp("", "claimlens-ocr-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	ext := strings.ToLower(filepath.Ext(input.FileName))
	if ext == "" {
		ext = extensionForContentType(input.ContentType)
	}
	srcPath := filepath.Join(tmpDir, "input"+ext)
	if err := os.WriteFile(srcPath, input.FileBytes, 0o600); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}

	if ext == ".pdf" {
		return r.recognizePDF(ctx, tmpDir, srcPath)
	}
	return r.recognizeImage(ctx, srcPath)
}

// recognizeImage runs tesseract on a single image, printing to stdout.
func (r *recognizer) recognizeImage(ctx context.Context, imagePath string) (string, error) {
	out, err := r.runner.Run(ctx, r.cfg.Tesseract, imagePath, "stdout", "-l", r.cfg.Language)
	if err != nil {
		return "", fmt.Errorf("running tesseract: %w", err)
	}
	return string(out), nil
}

// recognizePDF rasterizes the PDF to one PNG per page with pdftoppm,
// then OCRs each page in order and concatenates the text.
func (r *recognizer) recognizePDF(ctx context.Context, tmpDir, pdfPath string) (string, error) {
	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(r.cfg.DPI), "-png"}
	if r.cfg.MaxPages > 0 {
		args = append(args, "-f", "1", "-l", strconv.Itoa(r.cfg.MaxPages))
	}
	args = append(args, pdfPath, prefix)

	if _, err := r.runner.Run(ctx, r.cfg.Pdftoppm, args...); err != nil {
		return "", fmt.Errorf("running pdftoppm: %w", err)
	}

	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return "", fmt.Errorf("globbing pages: %w", err)
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("pdftoppm produced no pages")
	}
	sort.Strings(pages)

	var sb strings.Builder
	for i, page := range pages {
		text, err := r.recognizeImage(ctx, page)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	log.Printf("ocr.recognizer: OCR'd %d PDF page(s)", len(pages))
	return sb.String(), nil
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	default:
		return ""
	}
}
