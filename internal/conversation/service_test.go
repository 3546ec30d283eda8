package conversation

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"legalease-client/internal/legalease"
	"legalease-client/internal/shared/telemetry"
)

func TestMain(m *testing.M) {
	telemetry.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeBackend struct {
	upload    legalease.UploadResult
	uploadErr error
	reply     string
	replyErr  error
	block     chan struct{}
	entered   chan struct{}

	docCalls     []string
	generalCalls []string
}

func (f *fakeBackend) UploadDocument(ctx context.Context, file legalease.File) (legalease.UploadResult, error) {
	return f.upload, f.uploadErr
}

func (f *fakeBackend) ChatWithDocument(ctx context.Context, documentID, message string) (string, error) {
	f.docCalls = append(f.docCalls, documentID+":"+message)
	return f.wait(ctx)
}

func (f *fakeBackend) GeneralChat(ctx context.Context, message string) (string, error) {
	f.generalCalls = append(f.generalCalls, message)
	return f.wait(ctx)
}

func (f *fakeBackend) wait(ctx context.Context) (string, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.replyErr
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestStartDocumentRecordsInitialMessage(t *testing.T) {
	backend := &fakeBackend{
		upload: legalease.UploadResult{DocumentID: "doc1", Status: legalease.StatusReady, InitialBotMessage: "Hi"},
		reply:  "Clause 3 states...",
	}
	repo := NewMemoryRepo()
	svc := NewService(backend, repo)
	svc.Now = fixedNow
	ctx := context.Background()

	chat, err := svc.StartDocument(ctx, legalease.File{Name: "lease.pdf", Content: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("StartDocument: %v", err)
	}
	if chat.Session().DocumentID != "doc1" || chat.Session().FileName != "lease.pdf" {
		t.Fatalf("unexpected session %+v", chat.Session())
	}

	turn, err := chat.Send(ctx, "What is clause 3?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if turn.Role != RoleAssistant || turn.Text != "Clause 3 states..." || turn.Failed {
		t.Fatalf("unexpected reply turn %+v", turn)
	}
	if len(backend.docCalls) != 1 || backend.docCalls[0] != "doc1:What is clause 3?" {
		t.Fatalf("unexpected document calls %v", backend.docCalls)
	}
	if len(backend.generalCalls) != 0 {
		t.Fatalf("document chat must not use the general endpoint")
	}

	turns := chat.Turns()
	wantRoles := []Role{RoleAssistant, RoleUser, RoleAssistant}
	if len(turns) != len(wantRoles) {
		t.Fatalf("expected %d turns, got %d", len(wantRoles), len(turns))
	}
	for i, r := range wantRoles {
		if turns[i].Role != r {
			t.Fatalf("turn %d role = %s, want %s", i, turns[i].Role, r)
		}
		if !turns[i].CreatedAt.Equal(fixedNow()) {
			t.Fatalf("turn %d has unexpected timestamp", i)
		}
	}
	if turns[0].Text != "Hi" {
		t.Fatalf("first turn should be the initial bot message, got %q", turns[0].Text)
	}

	stored, err := repo.ListTurns(ctx, chat.Session().ID)
	if err != nil {
		t.Fatalf("ListTurns: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 persisted turns, got %d", len(stored))
	}
}

func TestStartDocumentUploadFailure(t *testing.T) {
	backend := &fakeBackend{uploadErr: &legalease.APIError{Kind: legalease.KindApplication, Message: "Unsupported file type"}}
	repo := NewMemoryRepo()
	svc := NewService(backend, repo)

	chat, err := svc.StartDocument(context.Background(), legalease.File{Name: "x.exe", Content: strings.NewReader("x")})
	if err == nil || chat != nil {
		t.Fatalf("expected failure, got chat=%v err=%v", chat, err)
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("no session should be created on upload failure")
	}
}

func TestSendFailureRecordsApology(t *testing.T) {
	backend := &fakeBackend{replyErr: &legalease.APIError{Kind: legalease.KindApplication, Message: "Document not found", StatusCode: 404}}
	svc := NewService(backend, nil)
	ctx := context.Background()

	chat, err := svc.StartGeneral(ctx)
	if err != nil {
		t.Fatalf("StartGeneral: %v", err)
	}
	turn, err := chat.Send(ctx, "hello")
	if !legalease.IsKind(err, legalease.KindApplication) {
		t.Fatalf("expected application error, got %v", err)
	}
	if !turn.Failed || turn.Role != RoleAssistant {
		t.Fatalf("expected apology turn, got %+v", turn)
	}
	if !strings.Contains(turn.Text, "Document not found") {
		t.Fatalf("apology should carry the failure message, got %q", turn.Text)
	}
	if got := len(chat.Turns()); got != 2 {
		t.Fatalf("expected user turn plus apology, got %d", got)
	}
	if chat.Pending() {
		t.Fatalf("chat should not stay pending after failure")
	}
}

func TestSendCanceledStillRecordsApology(t *testing.T) {
	backend := &fakeBackend{block: make(chan struct{})}
	svc := NewService(backend, NewMemoryRepo())
	chat, err := svc.StartGeneral(context.Background())
	if err != nil {
		t.Fatalf("StartGeneral: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	backend.entered = make(chan struct{}, 1)
	go func() {
		<-backend.entered
		cancel()
	}()

	turn, err := chat.Send(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !turn.Failed {
		t.Fatalf("expected apology turn, got %+v", turn)
	}
}

func TestSendRejectsEmptyAndConcurrent(t *testing.T) {
	backend := &fakeBackend{reply: "ok", block: make(chan struct{}), entered: make(chan struct{}, 1)}
	svc := NewService(backend, NewMemoryRepo())
	ctx := context.Background()
	chat, err := svc.StartGeneral(ctx)
	if err != nil {
		t.Fatalf("StartGeneral: %v", err)
	}

	if _, err := chat.Send(ctx, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := chat.Send(ctx, "first")
		done <- err
	}()
	<-backend.entered

	if !chat.Pending() {
		t.Fatalf("expected pending reply")
	}
	if _, err := chat.Send(ctx, "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(backend.block)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}
	if len(backend.generalCalls) != 1 {
		t.Fatalf("expected one backend call, got %d", len(backend.generalCalls))
	}
	if got := len(chat.Turns()); got != 2 {
		t.Fatalf("expected 2 turns, got %d", got)
	}

	backend.entered = nil
	if _, err := chat.Send(ctx, "third"); err != nil {
		t.Fatalf("send after completion: %v", err)
	}
}

func TestResumeRestoresTranscript(t *testing.T) {
	backend := &fakeBackend{reply: "A lease is..."}
	repo := NewMemoryRepo()
	svc := NewService(backend, repo)
	ctx := context.Background()

	chat, err := svc.StartGeneral(ctx)
	if err != nil {
		t.Fatalf("StartGeneral: %v", err)
	}
	if _, err := chat.Send(ctx, "What is a lease?"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	resumed, err := svc.Resume(ctx, chat.Session().ID)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	got := resumed.Turns()
	if len(got) != 2 || got[0].Text != "What is a lease?" || got[1].Text != "A lease is..." {
		t.Fatalf("unexpected resumed turns %+v", got)
	}

	if _, err := svc.Resume(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTurnsReturnsCopy(t *testing.T) {
	svc := NewService(&fakeBackend{reply: "ok"}, nil)
	ctx := context.Background()
	chat, _ := svc.StartGeneral(ctx)
	if _, err := chat.Send(ctx, "hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	turns := chat.Turns()
	turns[0].Text = "mutated"
	if chat.Turns()[0].Text != "hi" {
		t.Fatalf("Turns must return a copy")
	}
}
