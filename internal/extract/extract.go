package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"legalease-client/internal/shared/storage/object"
)

const (
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePlain = "text/plain"

	extractedSuffix = ".extracted.txt"
)

// ErrUnsupported is returned for media types with no text extractor.
var ErrUnsupported = errors.New("unsupported media type")

// FromStore reads a stored upload, extracts its text and saves a derived
// ".extracted.txt" copy next to it.
func FromStore(ctx context.Context, store object.ObjectStore, key, mimeType, fileName string) (string, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("extract key=%s: %w", key, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract key=%s: read: %w", key, err)
	}

	text, err := FromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", fmt.Errorf("extract key=%s: %w", key, err)
	}

	if _, err := store.SaveWithKey(ctx, key+extractedSuffix, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("extract key=%s: save: %w", key, err)
	}
	return text, nil
}

// FromBytes extracts text from an in-memory document. An empty or generic
// media type is resolved by sniffing the content.
func FromBytes(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch mt := Normalize(mimeType, fileName, data); mt {
	case MimePDF:
		return extractPDF(data)
	case MimeDOCX:
		return extractDOCX(data)
	case MimePlain, "text/markdown":
		if !utf8.Valid(data) {
			return "", errors.New("text document is not valid UTF-8")
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mt)
	}
}

// Normalize maps a declared media type to the one used for extraction.
func Normalize(mimeType, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	switch clean {
	case "", "application/octet-stream":
		sniffed := mimetype.Detect(data)
		clean = strings.SplitN(sniffed.String(), ";", 2)[0]
		if clean == "application/zip" {
			return fromZip(data, fileName)
		}
		return clean
	case "application/zip":
		return fromZip(data, fileName)
	default:
		return clean
	}
}

func fromZip(data []byte, fileName string) string {
	if zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		if findEntry(zr, "word/document.xml") != nil {
			return MimeDOCX
		}
	}
	if strings.EqualFold(filepath.Ext(fileName), ".docx") {
		return MimeDOCX
	}
	return "application/zip"
}

func findEntry(zr *zip.Reader, want string) *zip.File {
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == want {
			return f
		}
	}
	return nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	entry := findEntry(zr, "word/document.xml")
	if entry == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := entry.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return paragraphText(rc)
}

// paragraphText keeps character data and breaks lines at w:p and w:br.
func paragraphText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
