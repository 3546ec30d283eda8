package conversation

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
	turns    map[string][]Turn // sessionID -> turns
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sessions: make(map[string]Session),
		turns:    make(map[string][]Turn),
	}
}

// CreateSession stores a new session.
func (r *MemoryRepo) CreateSession(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

// GetSession returns a session by ID.
func (r *MemoryRepo) GetSession(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

// AppendTurn adds a turn to the end of its session.
func (r *MemoryRepo) AppendTurn(ctx context.Context, t Turn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[t.SessionID]; !ok {
		return ErrNotFound
	}
	r.turns[t.SessionID] = append(r.turns[t.SessionID], t)
	return nil
}

// ListTurns returns a copy of a session's turns.
func (r *MemoryRepo) ListTurns(ctx context.Context, sessionID string) ([]Turn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return nil, ErrNotFound
	}
	turns := r.turns[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}
