package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"legalease-client/internal/shared/storage/object/local"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const documentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>RENTAL AGREEMENT</w:t></w:r></w:p>
<w:p><w:r><w:t>Tenant agrees to pay rent.</w:t></w:r></w:p>
</w:body>
</w:document>`

func TestFromBytesDOCX(t *testing.T) {
	data := buildZip(t, map[string]string{"word/document.xml": documentXML})

	for _, mt := range []string{MimeDOCX, "application/zip", ""} {
		text, err := FromBytes(context.Background(), data, mt, "lease.docx")
		if err != nil {
			t.Fatalf("mime %q: %v", mt, err)
		}
		if !strings.Contains(text, "RENTAL AGREEMENT") || !strings.Contains(text, "Tenant agrees to pay rent.") {
			t.Fatalf("mime %q: unexpected text %q", mt, text)
		}
		if !strings.Contains(text, "\n") {
			t.Fatalf("expected paragraph breaks, got %q", text)
		}
	}
}

func TestFromBytesPlainText(t *testing.T) {
	text, err := FromBytes(context.Background(), []byte("clause 1: pay rent"), "text/plain; charset=utf-8", "a.txt")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != "clause 1: pay rent" {
		t.Fatalf("unexpected text %q", text)
	}

	if _, err := FromBytes(context.Background(), []byte{0xff, 0xfe, 0xfd}, "text/plain", "a.txt"); err == nil {
		t.Fatalf("expected error for invalid UTF-8")
	}
}

func TestFromBytesRejectsPlainZip(t *testing.T) {
	data := buildZip(t, map[string]string{"notes.txt": "hello"})

	_, err := FromBytes(context.Background(), data, "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromBytesInvalidPDF(t *testing.T) {
	if _, err := FromBytes(context.Background(), []byte("not a pdf"), MimePDF, "a.pdf"); err == nil {
		t.Fatalf("expected error for invalid pdf")
	}
}

func TestFromBytesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FromBytes(ctx, []byte("x"), MimePlain, "a.txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		mime string
		data []byte
		want string
	}{
		{mime: "Application/PDF", want: MimePDF},
		{mime: "", data: []byte("%PDF-1.4\n"), want: MimePDF},
		{mime: "application/octet-stream", data: []byte("plain words"), want: MimePlain},
		{mime: "image/png", want: "image/png"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.mime, "", tt.data); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}

func TestFromStoreSavesExtractedCopy(t *testing.T) {
	ctx := context.Background()
	store := local.New(t.TempDir())
	key, _, _, err := store.Save(ctx, "uploads", "lease.txt", strings.NewReader("The tenant shall pay."))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	text, err := FromStore(ctx, store, key, MimePlain, "lease.txt")
	if err != nil {
		t.Fatalf("FromStore: %v", err)
	}
	if text != "The tenant shall pay." {
		t.Fatalf("unexpected text %q", text)
	}

	rc, err := store.Open(ctx, key+extractedSuffix)
	if err != nil {
		t.Fatalf("open extracted copy: %v", err)
	}
	defer rc.Close()
	saved, _ := io.ReadAll(rc)
	if string(saved) != text {
		t.Fatalf("extracted copy mismatch: %q", saved)
	}

	if _, err := FromStore(ctx, store, "uploads/missing.txt", MimePlain, "missing.txt"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
