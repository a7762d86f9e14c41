package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/elephantfactory/promogen/internal/common"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestReadDocx(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>한국어교육 프로그램 안내</w:t></w:r></w:p>
    <w:p><w:r><w:t>일시: </w:t></w:r><w:r><w:t>2025년 1월 15일</w:t></w:r></w:p>
    <w:p/>
    <w:p><w:r><w:t>문의</w:t><w:tab/><w:t>052-123-4567</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := ReadDocument("notice.docx", buildDocx(t, docXML))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	want := "한국어교육 프로그램 안내\n일시: 2025년 1월 15일\n\n문의\t052-123-4567"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestReadDocxMissingPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.Close()

	_, err := ReadDocument("empty.docx", buf.Bytes())
	if !errors.Is(err, common.ErrUnreadableUpload) {
		t.Errorf("expected unreadable upload, got %v", err)
	}
}

func TestReadDocxNotAZip(t *testing.T) {
	_, err := ReadDocument("broken.docx", []byte("not a zip"))
	if !errors.Is(err, common.ErrUnreadableUpload) {
		t.Errorf("expected unreadable upload, got %v", err)
	}
}

func TestReadTxt(t *testing.T) {
	text, err := ReadDocument("notice.txt", []byte("\xEF\xBB\xBF안내문입니다"))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if text != "안내문입니다" {
		t.Errorf("BOM should be stripped, got %q", text)
	}
}

func TestReadTxtInvalidUTF8(t *testing.T) {
	_, err := ReadDocument("broken.txt", []byte{0xFF, 0xFE, 0x00})
	if !errors.Is(err, common.ErrUnreadableUpload) {
		t.Errorf("expected unreadable upload, got %v", err)
	}
}

func TestReadDocumentUnsupported(t *testing.T) {
	_, err := ReadDocument("notice.xlsx", []byte("x"))
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Errorf("expected unsupported format, got %v", err)
	}
}

func TestAllowed(t *testing.T) {
	for _, name := range []string{"a.docx", "b.PDF", "c.txt", "d.hwp"} {
		if !Allowed(name) {
			t.Errorf("%s should be allowed", name)
		}
	}
	for _, name := range []string{"a.xlsx", "b.png", "noext"} {
		if Allowed(name) {
			t.Errorf("%s should not be allowed", name)
		}
	}
}

func TestHashDocumentStable(t *testing.T) {
	a := HashDocument([]byte("같은 내용"))
	b := HashDocument([]byte("같은 내용"))
	if !bytes.Equal(a, b) {
		t.Error("hash must be stable for identical content")
	}
	if len(a) != 32 {
		t.Errorf("expected sha256 length, got %d", len(a))
	}
	if bytes.Equal(a, HashDocument([]byte("다른 내용"))) {
		t.Error("different content must hash differently")
	}
}

func TestCleanHWPText(t *testing.T) {
	in := "한국어\x00\x01교육 안내 (문의: 052-123-4567)"
	got := cleanHWPText(in)
	if strings.ContainsAny(got, "\x00\x01 ") {
		t.Errorf("control characters survived: %q", got)
	}
	if !strings.Contains(got, "한국어 교육 안내") {
		t.Errorf("hangul text mangled: %q", got)
	}
	if !strings.Contains(got, "(문의: 052-123-4567)") {
		t.Errorf("punctuation and digits mangled: %q", got)
	}
}

func TestCleanHWPTextCollapsesWhitespace(t *testing.T) {
	got := cleanHWPText("첫  줄\t끝  \n\n   둘째 줄  ")
	if got != "첫 줄 끝\n둘째 줄" {
		t.Errorf("got %q", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	got := joinNonEmpty([]string{"하나", "  ", "", "둘"})
	if got != "하나\n둘" {
		t.Errorf("got %q", got)
	}
}
