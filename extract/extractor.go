// Package extract turns uploaded documents into annotated plain text that can
// be handed to the advisor model.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Desarso/insurebot/i18n"
)

// PDFReader returns the extracted text of every page, in physical order.
// Pages without extractable text are returned as empty strings.
type PDFReader interface {
	ReadPages(path string) ([]string, error)
}

// DocumentReader returns the text of every paragraph of a Word document.
type DocumentReader interface {
	ReadParagraphs(path string) ([]string, error)
}

// readFile is swapped in tests.
var readFile = os.ReadFile

// Extractor converts files to text. A nil reader means the format cannot be
// parsed in this build and yields the localized "reader unavailable" message.
type Extractor struct {
	PDF       PDFReader
	Documents DocumentReader
}

// New returns an Extractor backed by the default PDF and DOCX readers.
func New() *Extractor {
	return &Extractor{
		PDF:       LedongthucPDF{},
		Documents: GooxmlDocuments{},
	}
}

// Extract reads the file at path. It never fails: every problem is described
// in the returned text, localized for lang.
func (e *Extractor) Extract(path string, lang i18n.Language) string {
	c := i18n.Lookup(lang)
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	header := fmt.Sprintf("File Name: %s\nFile Type: %s\n\n", name, strings.ToUpper(strings.TrimPrefix(ext, ".")))

	switch ext {
	case ".txt":
		return e.extractText(c, path, name, header)
	case ".pdf":
		return e.extractPDF(c, path, name, header)
	case ".doc", ".docx":
		return e.extractDocument(c, path, name, ext, header)
	default:
		return c.Format(i18n.KeyExtensionUnsupported, ext)
	}
}

func (e *Extractor) extractText(c i18n.Catalog, path, name, header string) string {
	data, err := readFile(path)
	if err != nil {
		return c.Format(i18n.KeyErrorReading, "TXT", name, err.Error())
	}
	if !utf8.Valid(data) {
		return c.Format(i18n.KeyErrorReading, "TXT", name, "invalid UTF-8 content")
	}
	return header + "Content:\n" + string(data)
}

func (e *Extractor) extractPDF(c i18n.Catalog, path, name, header string) string {
	if e.PDF == nil {
		return c.Format(i18n.KeyErrorPDFImport, name)
	}

	pages, err := safely(func() ([]string, error) { return e.PDF.ReadPages(path) })
	if err != nil {
		return c.Format(i18n.KeyErrorReading, "PDF", name, err.Error())
	}

	var sb strings.Builder
	sb.WriteString(header)
	fmt.Fprintf(&sb, "Total Pages: %d\n\nContent:\n", len(pages))
	for i, text := range pages {
		if text == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n--- Page %d ---\n%s\n", i+1, text)
	}
	return sb.String()
}

func (e *Extractor) extractDocument(c i18n.Catalog, path, name, ext, header string) string {
	if e.Documents == nil {
		return c.Format(i18n.KeyErrorDocxImport, ext, name)
	}

	paragraphs, err := safely(func() ([]string, error) { return e.Documents.ReadParagraphs(path) })
	if err != nil {
		return c.Format(i18n.KeyErrorReading, ext, name, err.Error())
	}

	nonEmpty := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return header + fmt.Sprintf("Total Paragraphs: %d\n\nContent:\n", len(paragraphs)) + strings.Join(nonEmpty, "\n")
}

// safely runs a parser and turns a panic on malformed input into an error.
func safely(read func() ([]string, error)) (out []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("malformed file: %v", r)
		}
	}()
	return read()
}
