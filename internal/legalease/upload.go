package legalease

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// UploadDocument sends a file for analysis. The content is read in full and
// base64 encoded; the returned DocumentID keys later ChatWithDocument calls.
func (c *Client) UploadDocument(ctx context.Context, file File) (UploadResult, error) {
	if strings.TrimSpace(file.Name) == "" {
		return UploadResult{}, c.fail(validationError(endpointUpload, "file name is required", nil))
	}
	if file.Content == nil {
		return UploadResult{}, c.fail(&APIError{Kind: KindEncode, Message: "file content is missing", Endpoint: endpointUpload})
	}

	encoded, err := c.encodeContent(file.Content)
	if err != nil {
		return UploadResult{}, c.fail(err)
	}

	req := uploadRequest{
		FileContent: encoded,
		FileName:    file.Name,
		FileType:    file.ContentType,
	}
	var out UploadResult
	if err := c.post(ctx, endpointUpload, req, &out); err != nil {
		return UploadResult{}, err
	}
	return out, nil
}

func (c *Client) encodeContent(r io.Reader) (string, *APIError) {
	src := r
	if c.maxUploadBytes > 0 {
		src = io.LimitReader(r, c.maxUploadBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", &APIError{Kind: KindEncode, Message: fmt.Sprintf("could not read file: %v", err), Endpoint: endpointUpload, Err: err}
	}
	if c.maxUploadBytes > 0 && int64(len(data)) > c.maxUploadBytes {
		return "", validationError(endpointUpload, fmt.Sprintf("file exceeds the %d byte upload limit", c.maxUploadBytes), nil)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// LoadFile reads a file from disk and detects its content type.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return File{
		Name:        filepath.Base(path),
		ContentType: DetectContentType(data),
		Content:     bytes.NewReader(data),
	}, nil
}

// DetectContentType sniffs data and returns a bare media type such as
// "application/pdf" or "text/plain".
func DetectContentType(data []byte) string {
	mt := mimetype.Detect(data).String()
	return strings.TrimSpace(strings.SplitN(mt, ";", 2)[0])
}
