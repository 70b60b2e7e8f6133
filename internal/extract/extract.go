// Package extract reads textbook PDFs. Text comes from the PDF text layer;
// scanned PDFs are rendered page by page and recognised with Tesseract, and
// their leading pages are kept as images for vision requests.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/syllabus/internal/artifact"
)

// Extractor implements text and OCR extraction for PDF files.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Extractor from a finalized Config.
func New(cfg *Config, logger *slog.Logger) *Extractor {
	return &Extractor{
		cfg:    *cfg,
		logger: logger.With("system", "extract"),
	}
}

// Extract validates the file at path and returns its content.
// All failures wrap ErrExtraction.
func (e *Extractor) Extract(ctx context.Context, path string) (*artifact.Source, error) {
	if err := ValidateFile(path, e.cfg.MaxFileBytes()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrExtraction, path, err)
	}

	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: invalid pdf: %w", ErrExtraction, ErrUnsupportedFormat, err)
	}

	source := &artifact.Source{
		Title: Title(path),
		Path:  path,
		Pages: pageCount,
	}

	pages, readErr := readText(path)
	if !NeedsOCR(pages, readErr, e.cfg.ScannedThreshold) {
		source.Text = joinPages(pages)
		e.logger.InfoContext(ctx, "text layer extracted", "path", path, "pages", pageCount)
		return source, nil
	}

	if readErr != nil {
		e.logger.WarnContext(ctx, "text layer incomplete, extracting every page with ocr",
			"path", path,
			"pages_read", len(pages),
			"error", readErr,
		)
	}

	e.logger.InfoContext(ctx, "extracting with ocr", "path", path, "pages", pageCount)

	texts, images, err := e.scan(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	source.Scanned = true
	source.Text = joinPages(texts)
	source.Images = images

	if source.Text == "" {
		return nil, fmt.Errorf("%w: %w: ocr produced no text", ErrExtraction, ErrNoContent)
	}

	return source, nil
}

// ValidateFile checks the extension and size of the file at path.
// A non-positive maxBytes disables the size check.
func ValidateFile(path string, maxBytes int64) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%w: %q is not a .pdf file", ErrUnsupportedFormat, filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrNoContent, path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, info.Size(), maxBytes)
	}
	return nil
}

// IsScanned reports whether a PDF with the given per-page text should be
// treated as scanned: its first page carries fewer than threshold characters.
func IsScanned(pages []string, threshold int) bool {
	if len(pages) == 0 {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(pages[0])) < threshold
}

// NeedsOCR reports whether the text layer cannot stand in for the book: it
// failed to read in full, or its first page falls under threshold characters.
// A partial text layer is never used, since the pages after the failure would
// be silently lost.
func NeedsOCR(pages []string, readErr error, threshold int) bool {
	return readErr != nil || IsScanned(pages, threshold)
}

// Title derives the course name from the file name.
func Title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

func readText(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			return pages, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}

func joinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
