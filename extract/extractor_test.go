package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Desarso/insurebot/i18n"
)

type fakePDF struct {
	pages []string
	err   error
}

func (f fakePDF) ReadPages(string) ([]string, error) { return f.pages, f.err }

type fakeDocs struct {
	paragraphs []string
	err        error
}

func (f fakeDocs) ReadParagraphs(string) ([]string, error) { return f.paragraphs, f.err }

type panickyPDF struct{}

func (panickyPDF) ReadPages(string) ([]string, error) { panic("bad xref table") }

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestExtractMetadataHeader(t *testing.T) {
	e := &Extractor{
		PDF:       fakePDF{pages: []string{"a"}},
		Documents: fakeDocs{paragraphs: []string{"p"}},
	}
	txt := writeTemp(t, "notes.txt", "hello")

	for _, path := range []string{txt, "/x/policy.pdf", "/x/claim.DOCX", "/x/legacy.doc"} {
		got := e.Extract(path, i18n.English)
		name := filepath.Base(path)
		ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
		prefix := "File Name: " + name + "\nFile Type: " + ext + "\n\n"
		if !strings.HasPrefix(got, prefix) {
			t.Errorf("Extract(%s) missing header, got %q", path, got)
		}
	}
}

func TestExtractText(t *testing.T) {
	path := writeTemp(t, "notes.txt", "my policy number is 42")
	got := New().Extract(path, i18n.English)
	want := "File Name: notes.txt\nFile Type: TXT\n\nContent:\nmy policy number is 42"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtractTextReadError(t *testing.T) {
	orig := readFile
	defer func() { readFile = orig }()
	readFile = func(string) ([]byte, error) { return nil, errors.New("permission denied") }

	got := New().Extract("/x/notes.txt", i18n.French)
	want := "Erreur de lecture du fichier TXT notes.txt: permission denied"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtractTextInvalidUTF8(t *testing.T) {
	path := writeTemp(t, "bin.txt", string([]byte{0xff, 0xfe, 0xfd}))
	got := New().Extract(path, i18n.English)
	if !strings.HasPrefix(got, "Error reading TXT file bin.txt:") {
		t.Errorf("Expected read error, got %q", got)
	}
}

func TestExtractPDFSkipsEmptyPages(t *testing.T) {
	e := &Extractor{PDF: fakePDF{pages: []string{"first", "", "third"}}}
	got := e.Extract("/x/policy.pdf", i18n.English)
	want := "File Name: policy.pdf\nFile Type: PDF\n\n" +
		"Total Pages: 3\n\nContent:\n" +
		"\n--- Page 1 ---\nfirst\n" +
		"\n--- Page 3 ---\nthird\n"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
	if strings.Contains(got, "--- Page 2 ---") {
		t.Error("empty page must not get a marker")
	}
}

func TestExtractPDFError(t *testing.T) {
	e := &Extractor{PDF: fakePDF{pages: []string{"partial"}, err: errors.New("truncated stream")}}
	got := e.Extract("/x/policy.pdf", i18n.English)
	if got != "Error reading PDF file policy.pdf: truncated stream" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestExtractPDFPanicIsRecovered(t *testing.T) {
	e := &Extractor{PDF: panickyPDF{}}
	got := e.Extract("/x/policy.pdf", i18n.English)
	if !strings.HasPrefix(got, "Error reading PDF file policy.pdf: malformed file:") {
		t.Errorf("unexpected result %q", got)
	}
}

func TestExtractPDFReaderUnavailable(t *testing.T) {
	e := &Extractor{}
	got := e.Extract("/x/policy.pdf", i18n.English)
	if got != "Error: PDF reader is not available. Unable to read PDF file policy.pdf." {
		t.Errorf("unexpected result %q", got)
	}
}

func TestExtractDocument(t *testing.T) {
	e := &Extractor{Documents: fakeDocs{paragraphs: []string{"Policy", "", "Premium: 100"}}}
	got := e.Extract("/x/claim.docx", i18n.English)
	want := "File Name: claim.docx\nFile Type: DOCX\n\nTotal Paragraphs: 3\n\nContent:\nPolicy\nPremium: 100"
	if got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtractDocumentErrors(t *testing.T) {
	e := &Extractor{Documents: fakeDocs{err: errors.New("zip: not a valid zip file")}}
	got := e.Extract("/x/legacy.doc", i18n.English)
	if got != "Error reading .doc file legacy.doc: zip: not a valid zip file" {
		t.Errorf("unexpected result %q", got)
	}

	got = (&Extractor{}).Extract("/x/legacy.docx", i18n.English)
	if got != "Error: Word document reader is not available. Unable to read .docx file legacy.docx." {
		t.Errorf("unexpected result %q", got)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	got := New().Extract("/x/sheet.XLSX", i18n.English)
	if got != "Unsupported file format: .xlsx. The insurance advisor can process .txt, .pdf, .doc and .docx files." {
		t.Errorf("unexpected result %q", got)
	}
}

func TestExtractPDFKeepsWhitespacePages(t *testing.T) {
	e := &Extractor{PDF: fakePDF{pages: []string{"first", "  \n", "third"}}}
	got := e.Extract("/x/policy.pdf", i18n.English)
	if !strings.Contains(got, "\n--- Page 2 ---\n  \n\n") {
		t.Errorf("whitespace-only page must keep its marker and text, got %q", got)
	}
}
