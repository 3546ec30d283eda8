package mockbackend

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalease-client/internal/agreements"
	"legalease-client/internal/extract"
	"legalease-client/internal/shared/metrics"
	"legalease-client/internal/shared/server/middleware"
	"legalease-client/internal/shared/server/respond"
	"legalease-client/internal/shared/storage/object"
	"legalease-client/internal/shared/telemetry"
	"legalease-client/internal/shared/util"
)

const (
	uploadNamespace = "uploads"
	artifactPrefix  = "agreements/"
)

// Handler serves the LegalEase backend contract with deterministic replies.
type Handler struct {
	Store object.ObjectStore
	// GenerateLimit throttles /generate-agreement per client IP.
	GenerateLimit middleware.RateLimitRule
	Now           func() time.Time

	docs    *documentStore
	limiter *middleware.RateLimiter
}

// NewHandler constructs a Handler backed by store.
func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{
		Store: store,
		Now:   time.Now,
		docs:  newDocumentStore(),
	}
}

// RegisterRoutes wires the backend endpoints under the /api group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/upload", h.upload)
	api.POST("/chat/upload", h.chatDocument)
	api.POST("/chat/general", h.chatGeneral)
	api.POST("/generate-agreement", middleware.RateLimit("generate", h.GenerateLimit, h.rateLimiter()), h.generate)
	api.GET("/download/:name", h.download)
}

func (h *Handler) rateLimiter() *middleware.RateLimiter {
	if h.limiter == nil {
		h.limiter = middleware.NewRateLimiter(h.Now)
	}
	return h.limiter
}

type uploadRequest struct {
	FileContent string `json:"file_content"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
}

func (h *Handler) upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid JSON body", "")
		return
	}
	if req.FileContent == "" || strings.TrimSpace(req.FileName) == "" {
		respond.Error(c, http.StatusBadRequest, "Missing file content or name", "")
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid base64 content", "")
		return
	}

	ctx := c.Request.Context()
	key, size, sniffed, err := h.Store.Save(ctx, uploadNamespace, req.FileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Error("upload.store_failed", map[string]any{"file_name": req.FileName, "err": err})
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Could not store the document")
		return
	}

	mimeType := strings.TrimSpace(req.FileType)
	if mimeType == "" {
		mimeType = sniffed
	}
	text, err := extract.FromStore(ctx, h.Store, key, mimeType, req.FileName)
	if err != nil {
		// The document stays chat-able; replies just cannot quote it.
		telemetry.Warn("upload.extract_failed", map[string]any{"storage_key": key, "mime_type": mimeType, "err": err})
		text = ""
	}

	doc := document{
		ID:         uuid.NewString(),
		FileName:   req.FileName,
		MimeType:   mimeType,
		StorageKey: key,
		SizeBytes:  size,
		Text:       text,
		CreatedAt:  h.now(),
	}
	h.docs.add(doc)
	c.Set(middleware.DocumentIDKey, doc.ID)
	metrics.IncDocumentsUploaded()

	respond.OK(c, gin.H{
		"document_id":         doc.ID,
		"status":              "ready",
		"initial_bot_message": initialMessage(doc),
	})
}

type documentChatRequest struct {
	DocumentID string `json:"document_id"`
	Message    string `json:"message"`
}

func (h *Handler) chatDocument(c *gin.Context) {
	var req documentChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid JSON body", "")
		return
	}
	if req.DocumentID == "" || strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "Missing document_id or message", "")
		return
	}
	c.Set(middleware.DocumentIDKey, req.DocumentID)

	doc, ok := h.docs.get(req.DocumentID)
	if !ok {
		respond.Error(c, http.StatusNotFound, "Document not found", "")
		return
	}

	reply := answerFromDocument(doc, h.docs.recent(doc.ID), req.Message)
	h.docs.remember(doc.ID, exchange{User: req.Message, Bot: reply})
	metrics.IncDocumentChats()
	respond.OK(c, gin.H{"bot_response": reply})
}

type generalChatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) chatGeneral(c *gin.Context) {
	var req generalChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid JSON body", "")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "Missing message", "")
		return
	}
	metrics.IncGeneralChats()
	respond.OK(c, gin.H{"bot_response": generalAnswer(req.Message)})
}

type generateRequest struct {
	AgreementType string            `json:"agreement_type"`
	FormData      map[string]string `json:"form_data"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid JSON body", "")
		return
	}
	if req.AgreementType == "" || len(req.FormData) == 0 {
		respond.Error(c, http.StatusBadRequest, "Missing agreement_type or form_data", "")
		return
	}

	kind, err := agreements.ParseKind(req.AgreementType)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	form, err := agreements.FromFormData(kind, req.FormData)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := agreements.Validate(form); err != nil {
		var verr *agreements.ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error())
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	text, err := renderAgreement(kind, agreements.FormData(form))
	if err != nil {
		telemetry.Error("generate.render_failed", map[string]any{"kind": string(kind), "err": err})
		respond.Error(c, http.StatusInternalServerError, "render_error", "Could not render the agreement")
		return
	}

	name := fmt.Sprintf("%s_%s.txt", kind, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	if _, err := h.Store.SaveWithKey(c.Request.Context(), artifactPrefix+name, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		telemetry.Error("generate.store_failed", map[string]any{"name": name, "err": err})
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Could not store the agreement")
		return
	}

	metrics.IncAgreementsGenerated()
	telemetry.Info("generate.done", map[string]any{"kind": string(kind), "artifact": name})
	respond.OK(c, gin.H{"pdf_url": "/download/" + name})
}

func (h *Handler) download(c *gin.Context) {
	raw := c.Param("name")
	name, err := util.SanitizeFileName(raw)
	if err != nil || name != raw {
		respond.Error(c, http.StatusBadRequest, "Invalid file name", "")
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), artifactPrefix+name)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "File not found", "")
		return
	}
	defer rc.Close()

	metrics.IncArtifactsServed()
	respond.Attachment(c, name, rc)
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now().UTC()
}
