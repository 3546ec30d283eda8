package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTokenRouter(token string) *gin.Engine {
	router := gin.New()
	router.Use(BearerToken(token, "/api/health"))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	router.GET("/api/health", ok)
	router.POST("/api/chat/general", ok)
	router.OPTIONS("/api/chat/general", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router
}

func TestBearerTokenRejectsMissingOrWrongToken(t *testing.T) {
	router := newTokenRouter("s3cret")

	for _, header := range []string{"", "Basic abc", "Bearer nope", "Bearer "} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat/general", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["error"] != "unauthorized" || body["message"] != "missing or invalid token" {
			t.Fatalf("unexpected body %v", body)
		}
	}
}

func TestBearerTokenAllowsValidTokenAndOpenPaths(t *testing.T) {
	router := newTokenRouter("s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/chat/general", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/health", nil),
		httptest.NewRequest(http.MethodOptions, "/api/chat/general", nil),
	} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code >= 400 {
			t.Fatalf("%s %s: expected pass-through, got %d", req.Method, req.URL.Path, resp.Code)
		}
	}
}

func TestBearerTokenDisabledWhenEmpty(t *testing.T) {
	router := newTokenRouter("")
	req := httptest.NewRequest(http.MethodPost, "/api/chat/general", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without a configured token, got %d", resp.Code)
	}
}
