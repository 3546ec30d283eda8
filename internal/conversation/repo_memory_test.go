package conversation

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepoRequiresSession(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.AppendTurn(ctx, Turn{ID: "t1", SessionID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.ListTurns(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.CreateSession(ctx, Session{ID: "s1"}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	turns, err := repo.ListTurns(ctx, "s1")
	if err != nil || len(turns) != 0 {
		t.Fatalf("expected empty transcript, got %v %v", turns, err)
	}
}

func TestMemoryRepoHonorsCanceledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.CreateSession(ctx, Session{ID: "s1"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
