package extract

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"baliance.com/gooxml/document"
	"github.com/Desarso/insurebot/i18n"
)

func writeDocx(t *testing.T, paragraphs ...[]string) string {
	t.Helper()
	doc := document.New()
	for _, runs := range paragraphs {
		para := doc.AddParagraph()
		for _, text := range runs {
			para.AddRun().AddText(text)
		}
	}
	path := filepath.Join(t.TempDir(), "policy.docx")
	if err := doc.SaveToFile(path); err != nil {
		t.Fatalf("failed to save %s: %v", path, err)
	}
	return path
}

func TestGooxmlDocumentsReadParagraphs(t *testing.T) {
	path := writeDocx(t, []string{"First"}, nil, []string{"Second ", "part"})

	got, err := GooxmlDocuments{}.ReadParagraphs(path)
	if err != nil {
		t.Fatalf("ReadParagraphs() error = %v", err)
	}
	want := []string{"First", "", "Second part"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadParagraphs() = %q, want %q", got, want)
	}
}

func TestExtractRealDocx(t *testing.T) {
	path := writeDocx(t, []string{"First"}, nil, []string{"Second ", "part"})
	e := &Extractor{PDF: LedongthucPDF{}, Documents: GooxmlDocuments{}}

	got := e.Extract(path, i18n.English)
	for _, want := range []string{"File Type: DOCX", "Total Paragraphs: 3", "Content:\nFirst\nSecond part"} {
		if !strings.Contains(got, want) {
			t.Errorf("Extract() = %q, missing %q", got, want)
		}
	}
}

func TestLedongthucPDFRejectsNonPDF(t *testing.T) {
	path := writeTemp(t, "fake.pdf", "not a pdf at all")
	if _, err := (LedongthucPDF{}).ReadPages(path); err == nil {
		t.Error("ReadPages() on non-PDF bytes should fail")
	}
}
