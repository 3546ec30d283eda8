package mockbackend

import (
	"sync"
	"time"
)

// historyLimit is how many past exchanges are kept as chat context.
const historyLimit = 5

type document struct {
	ID         string
	FileName   string
	MimeType   string
	StorageKey string
	SizeBytes  int64
	Text       string
	CreatedAt  time.Time
}

type exchange struct {
	User string
	Bot  string
}

// documentStore keeps analyzed documents and their chat history in memory.
// Restarting the backend forgets every document ID it issued.
type documentStore struct {
	mu      sync.RWMutex
	docs    map[string]document
	history map[string][]exchange
}

func newDocumentStore() *documentStore {
	return &documentStore{
		docs:    make(map[string]document),
		history: make(map[string][]exchange),
	}
}

func (s *documentStore) add(doc document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	s.history[doc.ID] = nil
}

func (s *documentStore) get(id string) (document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// recent returns a copy of the retained exchanges, oldest first.
func (s *documentStore) recent(id string) []exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]exchange(nil), s.history[id]...)
}

func (s *documentStore) remember(id string, ex exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := append(s.history[id], ex)
	if len(h) > historyLimit {
		h = h[len(h)-historyLimit:]
	}
	s.history[id] = h
}
