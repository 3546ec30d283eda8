package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"legalease-client/internal/legalease"
	"legalease-client/internal/shared/telemetry"
)

// Backend is the subset of the LegalEase client a conversation needs.
type Backend interface {
	UploadDocument(ctx context.Context, file legalease.File) (legalease.UploadResult, error)
	ChatWithDocument(ctx context.Context, documentID, message string) (string, error)
	GeneralChat(ctx context.Context, message string) (string, error)
}

// Service starts and resumes conversations.
type Service struct {
	Client Backend
	Repo   Repo
	Now    func() time.Time
}

// NewService wires a Service. A nil repo falls back to memory.
func NewService(client Backend, repo Repo) *Service {
	if repo == nil {
		repo = NewMemoryRepo()
	}
	return &Service{Client: client, Repo: repo, Now: time.Now}
}

// StartDocument uploads file and opens a conversation about it. The server's
// initial message becomes the first assistant turn.
func (s *Service) StartDocument(ctx context.Context, file legalease.File) (*Chat, error) {
	res, err := s.Client.UploadDocument(ctx, file)
	if err != nil {
		return nil, err
	}

	chat, err := s.open(ctx, Session{DocumentID: res.DocumentID, FileName: file.Name})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(res.InitialBotMessage) != "" {
		if _, err := chat.record(ctx, RoleAssistant, res.InitialBotMessage, false); err != nil {
			return nil, err
		}
	}
	telemetry.Info("conversation.document_started", map[string]any{
		"session_id":  chat.session.ID,
		"document_id": res.DocumentID,
		"status":      string(res.Status),
	})
	return chat, nil
}

// StartGeneral opens a conversation with no document.
func (s *Service) StartGeneral(ctx context.Context) (*Chat, error) {
	chat, err := s.open(ctx, Session{})
	if err != nil {
		return nil, err
	}
	telemetry.Info("conversation.general_started", map[string]any{"session_id": chat.session.ID})
	return chat, nil
}

// Resume reloads a persisted conversation with its turns.
func (s *Service) Resume(ctx context.Context, sessionID string) (*Chat, error) {
	session, err := s.Repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	turns, err := s.Repo.ListTurns(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load turns for %s: %w", sessionID, err)
	}
	return &Chat{svc: s, session: session, turns: turns}, nil
}

func (s *Service) open(ctx context.Context, session Session) (*Chat, error) {
	session.ID = uuid.NewString()
	session.CreatedAt = s.now()
	if err := s.Repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Chat{svc: s, session: session}, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Chat is one live conversation. At most one message may be outstanding.
type Chat struct {
	svc     *Service
	session Session

	mu       sync.Mutex
	turns    []Turn
	inFlight bool
}

// Session returns the conversation's session record.
func (c *Chat) Session() Session {
	return c.session
}

// Turns returns a copy of the transcript.
func (c *Chat) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Pending reports whether a reply is outstanding.
func (c *Chat) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Send records text as a user turn and asks the backend for a reply. On
// failure an apology turn is recorded and returned alongside the error.
func (c *Chat) Send(ctx context.Context, text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return Turn{}, ErrBusy
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if _, err := c.record(ctx, RoleUser, text, false); err != nil {
		return Turn{}, err
	}

	reply, err := c.ask(ctx, text)
	if err != nil {
		telemetry.Warn("conversation.reply_failed", map[string]any{
			"session_id": c.session.ID,
			"err":        err,
		})
		apology, recErr := c.record(context.WithoutCancel(ctx), RoleAssistant, apologyText(err), true)
		if recErr != nil {
			return Turn{}, errors.Join(err, recErr)
		}
		return apology, err
	}
	return c.record(ctx, RoleAssistant, reply, false)
}

func (c *Chat) ask(ctx context.Context, text string) (string, error) {
	if c.session.HasDocument() {
		return c.svc.Client.ChatWithDocument(ctx, c.session.DocumentID, text)
	}
	return c.svc.Client.GeneralChat(ctx, text)
}

func (c *Chat) record(ctx context.Context, role Role, text string, failed bool) (Turn, error) {
	turn := Turn{
		ID:        uuid.NewString(),
		SessionID: c.session.ID,
		Role:      role,
		Text:      text,
		Failed:    failed,
		CreatedAt: c.svc.now(),
	}
	if err := c.svc.Repo.AppendTurn(ctx, turn); err != nil {
		return Turn{}, fmt.Errorf("append turn: %w", err)
	}
	c.mu.Lock()
	c.turns = append(c.turns, turn)
	c.mu.Unlock()
	return turn, nil
}

func apologyText(err error) string {
	return "Sorry, I encountered an error: " + err.Error()
}
