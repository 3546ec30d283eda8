package legalease

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"legalease-client/internal/shared/util"
)

const endpointDownload = "/download"

// ArtifactSink stores downloaded artifacts. The object stores satisfy it.
type ArtifactSink interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

// ResolveArtifactURL turns an artifact reference into an absolute URL.
// References that already start with "http" are returned unchanged; anything
// else is treated as relative to the base URL.
func (c *Client) ResolveArtifactURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// DownloadArtifact fetches a generated artifact and saves it into sink under
// fileName, or the configured fallback name when fileName is empty.
func (c *Client) DownloadArtifact(ctx context.Context, ref, fileName string, sink ArtifactSink) (Artifact, error) {
	if strings.TrimSpace(ref) == "" {
		return Artifact{}, c.fail(validationError(endpointDownload, "artifact url is required", nil))
	}
	if sink == nil {
		return Artifact{}, fmt.Errorf("download artifact: sink is nil")
	}
	if strings.TrimSpace(fileName) == "" {
		fileName = c.downloadFileName
	}
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Artifact{}, c.fail(validationError(endpointDownload, fmt.Sprintf("invalid file name %q", fileName), err))
	}

	target := c.ResolveArtifactURL(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Artifact{}, c.fail(transportError(endpointDownload, err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Artifact{}, c.fail(transportError(endpointDownload, err))
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		raw, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			raw = nil
		}
		return Artifact{}, c.fail(applicationError(endpointDownload, resp.StatusCode, raw))
	}

	contentType := resp.Header.Get("Content-Type")
	size, err := sink.SaveWithKey(ctx, name, contentType, resp.Body)
	if err != nil {
		return Artifact{}, fmt.Errorf("save artifact %s: %w", name, err)
	}

	return Artifact{
		URL:         target,
		FileName:    name,
		StorageKey:  name,
		ContentType: contentType,
		SizeBytes:   size,
	}, nil
}
