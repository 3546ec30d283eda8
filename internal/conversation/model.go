package conversation

import "time"

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session groups the turns of one conversation. Document sessions carry the
// server-issued document ID; general sessions leave it empty.
type Session struct {
	ID         string
	DocumentID string
	FileName   string
	CreatedAt  time.Time
}

// HasDocument reports whether chat messages are routed to the document endpoint.
func (s Session) HasDocument() bool {
	return s.DocumentID != ""
}

// Turn is one message in a conversation. Turns are append-only.
type Turn struct {
	ID        string
	SessionID string
	Role      Role
	Text      string
	// Failed marks an assistant apology recorded in place of a reply.
	Failed    bool
	CreatedAt time.Time
}
