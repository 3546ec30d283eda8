package legalease_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"legalease-client/internal/legalease"
	"legalease-client/internal/shared/storage/object/local"
)

func TestResolveArtifactURL(t *testing.T) {
	client, err := legalease.NewClient(legalease.Config{BaseURL: "http://localhost:5000/api/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	tests := []struct {
		ref  string
		want string
	}{
		{ref: "/files/x.pdf", want: "http://localhost:5000/api/files/x.pdf"},
		{ref: "download/nda_1.pdf", want: "http://localhost:5000/api/download/nda_1.pdf"},
		{ref: "https://cdn.example.com/x.pdf", want: "https://cdn.example.com/x.pdf"},
		{ref: "http://other.example.com/y.pdf", want: "http://other.example.com/y.pdf"},
	}
	for _, tt := range tests {
		if got := client.ResolveArtifactURL(tt.ref); got != tt.want {
			t.Fatalf("ResolveArtifactURL(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestDownloadArtifactSavesIntoStore(t *testing.T) {
	const body = "RENTAL AGREEMENT\nTenant: Ada\n"
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/download/rental_1.pdf" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, body)
	})

	dir := t.TempDir()
	store := local.New(dir)
	art, err := client.DownloadArtifact(context.Background(), "/download/rental_1.pdf", "lease.pdf", store)
	if err != nil {
		t.Fatalf("DownloadArtifact: %v", err)
	}
	if art.URL != srv.URL+"/api/download/rental_1.pdf" {
		t.Fatalf("unexpected url %q", art.URL)
	}
	if art.FileName != "lease.pdf" || art.ContentType != "application/pdf" || art.SizeBytes != int64(len(body)) {
		t.Fatalf("unexpected artifact %+v", art)
	}

	data, err := os.ReadFile(filepath.Join(dir, "lease.pdf"))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != body {
		t.Fatalf("saved content mismatch: %q", data)
	}
}

func TestDownloadArtifactFallbackName(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "x")
	})
	store := local.New(t.TempDir())

	art, err := client.DownloadArtifact(context.Background(), "/download/a.pdf", "  ", store)
	if err != nil {
		t.Fatalf("DownloadArtifact: %v", err)
	}
	if art.FileName != legalease.DefaultDownloadFileName {
		t.Fatalf("expected fallback name, got %q", art.FileName)
	}
}

func TestDownloadArtifactAbsoluteURL(t *testing.T) {
	var hits atomic.Int32
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, "from cdn")
	}))
	t.Cleanup(cdn.Close)

	client, err := legalease.NewClient(legalease.Config{BaseURL: "http://127.0.0.1:1/api"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	dir := t.TempDir()
	if _, err := client.DownloadArtifact(context.Background(), cdn.URL+"/x.pdf", "x.pdf", local.New(dir)); err != nil {
		t.Fatalf("DownloadArtifact: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected the absolute url to be fetched")
	}
}

func TestDownloadArtifactFailures(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Artifact not found"})
	})
	dir := t.TempDir()
	store := local.New(dir)
	ctx := context.Background()

	_, err := client.DownloadArtifact(ctx, "/download/missing.pdf", "missing.pdf", store)
	apiErr := mustAPIError(t, err)
	if apiErr.Kind != legalease.KindApplication || apiErr.Message != "Artifact not found" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "missing.pdf")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("nothing should be saved on failure")
	}

	if _, err := client.DownloadArtifact(ctx, " ", "a.pdf", store); !legalease.IsKind(err, legalease.KindValidation) {
		t.Fatalf("expected validation failure for empty ref, got %v", err)
	}
	if _, err := client.DownloadArtifact(ctx, "/download/a.pdf", "../escape.pdf", store); !legalease.IsKind(err, legalease.KindValidation) {
		t.Fatalf("expected validation failure for traversal name, got %v", err)
	}
	if _, err := client.DownloadArtifact(ctx, "/download/a.pdf", "a.pdf", nil); err == nil {
		t.Fatalf("expected error for nil sink")
	}
}

type failingSink struct{}

func (failingSink) SaveWithKey(context.Context, string, string, io.Reader) (int64, error) {
	return 0, errors.New("disk full")
}

func TestDownloadArtifactSinkError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "x")
	})
	_, err := client.DownloadArtifact(context.Background(), "/download/a.pdf", "a.pdf", failingSink{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected sink error, got %v", err)
	}
	if _, ok := legalease.AsAPIError(err); ok {
		t.Fatalf("sink errors are not API errors")
	}
}
