package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrEmptyDocument = errors.New("document is empty")

type PDFParserService interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
	ExtractTextFromBytes(data []byte) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText returns the newline-joined text of every page that yields any.
// Pages without extractable text (e.g. scanned images) are skipped, so an
// image-only PDF produces an empty string rather than an error.
func (p *pdfParserService) ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	if size <= 0 {
		return "", ErrEmptyDocument
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("failed to read PDF: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := reader.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if pageText = strings.TrimSpace(pageText); pageText != "" {
			pages = append(pages, pageText)
		}
	}

	return strings.Join(pages, "\n"), nil
}

func (p *pdfParserService) ExtractTextFromBytes(data []byte) (string, error) {
	return p.ExtractText(bytes.NewReader(data), int64(len(data)))
}
