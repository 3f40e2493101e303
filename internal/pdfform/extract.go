package pdfform

import (
	"bytes"
	"fmt"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text of every page of a PDF document.
func ExtractText(data []byte) (string, error) {
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("new pdf reader: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
