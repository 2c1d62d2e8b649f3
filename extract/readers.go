package extract

import (
	"fmt"
	"strings"

	"baliance.com/gooxml/document"
	"github.com/ledongthuc/pdf"
)

// LedongthucPDF reads PDF text with github.com/ledongthuc/pdf.
type LedongthucPDF struct{}

// ReadPages implements PDFReader.
func (LedongthucPDF) ReadPages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// GooxmlDocuments reads Word paragraphs with baliance.com/gooxml.
type GooxmlDocuments struct{}

// ReadParagraphs implements DocumentReader.
func (GooxmlDocuments) ReadParagraphs(path string) ([]string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	paras := doc.Paragraphs()
	out := make([]string, 0, len(paras))
	for _, para := range paras {
		var sb strings.Builder
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		out = append(out, sb.String())
	}
	return out, nil
}
