package bootstrap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"legalease-client/internal/conversation"
	"legalease-client/internal/shared/config"
	localstore "legalease-client/internal/shared/storage/object/local"
	"legalease-client/internal/shared/telemetry"
)

func TestMain(m *testing.M) {
	telemetry.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestBuildClientWithoutDatabaseUsesMemory(t *testing.T) {
	cfg := config.Config{
		APIBaseURL:      "http://localhost:5000/api",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
	}
	app, err := BuildClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildClient: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Fatal("expected no database")
	}
	if _, ok := app.Conversations.Repo.(*conversation.MemoryRepo); !ok {
		t.Fatalf("expected memory repo, got %T", app.Conversations.Repo)
	}
	if _, ok := app.Store.(*localstore.Store); !ok {
		t.Fatalf("expected local store, got %T", app.Store)
	}
	if app.API.BaseURL() != cfg.APIBaseURL {
		t.Fatalf("unexpected base url %q", app.API.BaseURL())
	}
}

func TestBuildClientRejectsBadBaseURL(t *testing.T) {
	cfg := config.Config{APIBaseURL: "localhost:5000", LocalStoreDir: t.TempDir()}
	if _, err := BuildClient(context.Background(), cfg); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestBuildStoreRequiresS3Settings(t *testing.T) {
	_, err := buildStore(context.Background(), config.Config{ObjectStoreType: "s3"})
	if err == nil {
		t.Fatal("expected error without bucket and region")
	}
}

func TestAPIClientSendsConfiguredToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bot_response":"ok"}`))
	}))
	defer srv.Close()

	client, err := NewAPIClient(config.Config{APIBaseURL: srv.URL, APIToken: "abc"})
	if err != nil {
		t.Fatalf("NewAPIClient: %v", err)
	}
	if _, err := client.GeneralChat(context.Background(), "hi"); err != nil {
		t.Fatalf("GeneralChat: %v", err)
	}
	if got != "Bearer abc" {
		t.Fatalf("unexpected Authorization %q", got)
	}
}

func TestBuildMockRouterServesHealth(t *testing.T) {
	r, err := BuildMockRouter(context.Background(), config.Config{LocalStoreDir: t.TempDir(), MockAPIToken: "tok"})
	if err != nil {
		t.Fatalf("BuildMockRouter: %v", err)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat/general", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
