package conversation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateSession inserts a new session row.
func (r *PGRepo) CreateSession(ctx context.Context, s Session) error {
	const query = `
INSERT INTO conversation_sessions (id, document_id, file_name, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.DB.ExecContext(ctx, query, s.ID, nullString(s.DocumentID), nullString(s.FileName), s.CreatedAt)
	return err
}

// GetSession loads a session by ID.
func (r *PGRepo) GetSession(ctx context.Context, id string) (Session, error) {
	const query = `
SELECT id, document_id, file_name, created_at
FROM conversation_sessions
WHERE id = $1`

	var s Session
	var documentID, fileName sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &documentID, &fileName, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	s.DocumentID = documentID.String
	s.FileName = fileName.String
	return s, nil
}

// AppendTurn inserts a turn; seq is assigned by the database.
func (r *PGRepo) AppendTurn(ctx context.Context, t Turn) error {
	const query = `
INSERT INTO conversation_turns (id, session_id, role, text, failed, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctx, query, t.ID, t.SessionID, string(t.Role), t.Text, t.Failed, t.CreatedAt)
	return err
}

// ListTurns returns a session's turns ordered by insertion.
func (r *PGRepo) ListTurns(ctx context.Context, sessionID string) ([]Turn, error) {
	if _, err := r.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	const query = `
SELECT id, session_id, role, text, failed, created_at
FROM conversation_turns
WHERE session_id = $1
ORDER BY seq ASC`

	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := []Turn{}
	for rows.Next() {
		var t Turn
		var role string
		if err := rows.Scan(&t.ID, &t.SessionID, &role, &t.Text, &t.Failed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Role = Role(role)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
