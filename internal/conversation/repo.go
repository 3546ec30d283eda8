package conversation

import "context"

// Repo persists sessions and their turns.
type Repo interface {
	CreateSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	AppendTurn(ctx context.Context, t Turn) error
	// ListTurns returns a session's turns in insertion order.
	ListTurns(ctx context.Context, sessionID string) ([]Turn, error)
}
