// Package document turns resume files into plain text for the extraction
// pipeline.
package document

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"

	"cvmatch/internal/errors"
)

// Extractor converts a document into its plain-text content. Implementations
// fail only when the file itself cannot be read or parsed; pages with no
// extractable text contribute empty strings.
type Extractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
	ExtractReader(ctx context.Context, r io.Reader, uri string) (string, error)
}

// PDFExtractor wraps the eino PDF parser.
type PDFExtractor struct {
	parser *pdf.PDFParser
	logger *errors.Logger
}

// NewPDFExtractor builds a page-splitting PDF extractor. Pages are parsed
// separately and rejoined with newlines so line-based segmentation still sees
// page boundaries.
func NewPDFExtractor(ctx context.Context, logger *errors.Logger) (*PDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: true})
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeDocumentExtract,
			"Failed to initialize PDF parser", err)
	}
	return &PDFExtractor{parser: p, logger: logger}, nil
}

func (e *PDFExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				"Document does not exist", err).WithContext("path", path)
		}
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Cannot open document", err).WithContext("path", path)
	}
	defer file.Close()

	return e.ExtractReader(ctx, file, path)
}

func (e *PDFExtractor) ExtractReader(ctx context.Context, r io.Reader, uri string) (string, error) {
	docs, err := e.parser.Parse(ctx, r, einoparser.WithURI(uri))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeDocumentExtract,
			"PDF text extraction failed", err).WithContext("uri", uri)
	}
	if len(docs) == 0 {
		return "", errors.NewIOError(errors.ErrCodeDocumentExtract,
			"PDF contains no parseable pages", nil).WithContext("uri", uri)
	}

	pages := make([]string, 0, len(docs))
	for _, doc := range docs {
		pages = append(pages, doc.Content)
	}
	text := strings.Join(pages, "\n")

	if e.logger != nil {
		e.logger.Debug("Extracted document text",
			"uri", uri, "pages", len(docs), "characters", len(text))
	}
	return text, nil
}
