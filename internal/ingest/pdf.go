package ingest

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/elephantfactory/promogen/internal/common"
)

// readPDF concatenates the extracted text of every page.
func readPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", common.ErrUnreadableUpload, err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: extract page %d: %v", common.ErrUnreadableUpload, i, err)
		}
		pages = append(pages, text)
	}
	return joinNonEmpty(pages), nil
}
