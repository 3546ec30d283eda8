package legalease

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"legalease-client/internal/agreements"
	"legalease-client/internal/shared/telemetry"
)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:5000/api"
	// DefaultDownloadFileName is used when a download has no suggested name.
	DefaultDownloadFileName = "generated_agreement.pdf"

	endpointUpload       = "/upload"
	endpointDocumentChat = "/chat/upload"
	endpointGeneralChat  = "/chat/general"
	endpointGenerate     = "/generate-agreement"
)

// Config is fixed at construction; the client never mutates it.
type Config struct {
	BaseURL string
	// Timeout bounds a whole request. Zero leaves the transport default.
	Timeout time.Duration
	// MaxUploadBytes rejects larger uploads before sending. Zero means no limit.
	MaxUploadBytes int64
	HTTPClient     *http.Client
	// TokenSource, when set, adds a bearer token to every request.
	TokenSource      oauth2.TokenSource
	DownloadFileName string
}

// Client calls the LegalEase backend. It holds no per-call state and is safe
// for concurrent use; it never retries, queues or de-duplicates requests.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	maxUploadBytes   int64
	downloadFileName string
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("base url must be an absolute http(s) url: %q", base)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative")
	}
	if cfg.MaxUploadBytes < 0 {
		return nil, fmt.Errorf("max upload bytes must not be negative")
	}

	hc := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		hc = &copied
	}
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	if cfg.TokenSource != nil {
		hc.Transport = &oauth2.Transport{Source: cfg.TokenSource, Base: hc.Transport}
	}

	name := strings.TrimSpace(cfg.DownloadFileName)
	if name == "" {
		name = DefaultDownloadFileName
	}

	return &Client{
		baseURL:          base,
		httpClient:       hc,
		maxUploadBytes:   cfg.MaxUploadBytes,
		downloadFileName: name,
	}, nil
}

// BaseURL returns the configured endpoint prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ChatWithDocument asks a question about a previously uploaded document.
// Unknown or expired document IDs surface whatever message the server sends.
func (c *Client) ChatWithDocument(ctx context.Context, documentID, message string) (string, error) {
	if strings.TrimSpace(documentID) == "" {
		return "", c.fail(validationError(endpointDocumentChat, "document id is required", nil))
	}
	if strings.TrimSpace(message) == "" {
		return "", c.fail(validationError(endpointDocumentChat, "message is required", nil))
	}
	var out chatResponse
	if err := c.post(ctx, endpointDocumentChat, documentChatRequest{DocumentID: documentID, Message: message}, &out); err != nil {
		return "", err
	}
	return *out.BotResponse, nil
}

// GeneralChat asks a question with no document context.
func (c *Client) GeneralChat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", c.fail(validationError(endpointGeneralChat, "message is required", nil))
	}
	var out chatResponse
	if err := c.post(ctx, endpointGeneralChat, generalChatRequest{Message: message}, &out); err != nil {
		return "", err
	}
	return *out.BotResponse, nil
}

// GenerateAgreement validates the form locally, then asks the server to
// synthesize the agreement. Validation failures never reach the network.
func (c *Client) GenerateAgreement(ctx context.Context, form agreements.Form) (AgreementResult, error) {
	if err := agreements.Validate(form); err != nil {
		return AgreementResult{}, c.fail(validationError(endpointGenerate, err.Error(), err))
	}
	req := generateRequest{
		AgreementType: string(form.Kind()),
		FormData:      agreements.FormData(form),
	}
	var out AgreementResult
	if err := c.post(ctx, endpointGenerate, req, &out); err != nil {
		return AgreementResult{}, err
	}
	return out, nil
}

type shape interface {
	check() error
}

// post runs the shared request algorithm. Exactly one of three outcomes:
// transport failure, application failure (any non-2xx, whatever the body), or
// a decoded success.
func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return c.fail(&APIError{Kind: KindEncode, Message: "could not encode request", Endpoint: endpoint, Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(transportError(endpoint, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(transportError(endpoint, err))
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)

	if !isSuccess(resp.StatusCode) {
		if readErr != nil {
			raw = nil
		}
		return c.fail(applicationError(endpoint, resp.StatusCode, raw))
	}
	if readErr != nil {
		return c.fail(transportError(endpoint, readErr))
	}

	if err := decodeInto(raw, out); err != nil {
		return c.fail(decodeError(endpoint, resp.StatusCode, err))
	}

	telemetry.Debug("legalease.request", map[string]any{
		"endpoint":    endpoint,
		"status":      resp.StatusCode,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return nil
}

// decodeInto requires valid JSON carrying the fields the result type needs.
// Callers discard out when an error is returned.
func decodeInto(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	if s, ok := out.(shape); ok {
		return s.check()
	}
	return nil
}

func (c *Client) fail(err *APIError) error {
	telemetry.Error("legalease.request_failed", map[string]any{
		"endpoint": err.Endpoint,
		"kind":     string(err.Kind),
		"status":   err.StatusCode,
		"code":     err.Code,
		"message":  err.Message,
	})
	return err
}
