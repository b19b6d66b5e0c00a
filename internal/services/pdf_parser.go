package services

import (
	"bytes"
	"errors"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrInvalidDocument is returned when a resume buffer is empty or nil.
var ErrInvalidDocument = errors.New("invalid or empty PDF buffer")

type PDFParserService interface {
	ExtractText(pdfBytes []byte) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText concatenates the text runs of every page, separated by
// single spaces and trimmed. A corrupt or unreadable document yields an
// empty string with no error: callers treat "" as nothing to score.
func (p *pdfParserService) ExtractText(pdfBytes []byte) (string, error) {
	if len(pdfBytes) == 0 {
		return "", ErrInvalidDocument
	}

	text := extractAllPages(pdfBytes)
	return strings.TrimSpace(text), nil
}

func extractAllPages(pdfBytes []byte) (text string) {
	// The pdf library panics on some malformed documents; a corrupt
	// resume must degrade to an empty string, not kill the worker.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  PDF extraction panicked: %v", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		log.Printf("⚠️  Failed to open PDF: %v", err)
		return ""
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if textBuilder.Len() > 0 && pageText != "" {
			textBuilder.WriteString(" ")
		}
		textBuilder.WriteString(strings.TrimSpace(pageText))
	}

	return textBuilder.String()
}
