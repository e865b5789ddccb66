// Package pdftext extracts plain text from uploaded PDF catalogs.
package pdftext

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/paratodos/storefront/internal/core/port"
)

var _ port.TextExtractor = (*Extractor)(nil)

type Extractor struct{}

func New() Extractor {
	return Extractor{}
}

// ExtractText reads every page's extractable text and joins the
// contributing pages with a blank line. Pages without extractable
// text are skipped. A document with no text at all yields an empty
// string and no error.
func (Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	const op = "pdftext.ExtractText"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s: failed to open %s: %w", op, path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n\n"), nil
}
