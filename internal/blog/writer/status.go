package writer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnknownRecord is returned when no status exists for a record id.
var ErrUnknownRecord = errors.New("unknown record")

type State string

const (
	StatePending State = "pending"
	StateSaved   State = "saved"
	StateFailed  State = "failed"
)

// Status is the last known write outcome of one record.
type Status struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusStore keeps write statuses for a limited time.
type StatusStore interface {
	Set(ctx context.Context, s Status) error
	Get(ctx context.Context, id primitive.ObjectID) (*Status, error)
}

type memoryEntry struct {
	status    Status
	expiresAt time.Time
}

// MemoryStatusStore keeps statuses in process memory with a TTL.
type MemoryStatusStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	sets    int
	now     func() time.Time
}

func NewMemoryStatusStore(ttl time.Duration) *MemoryStatusStore {
	return &MemoryStatusStore{ttl: ttl, entries: map[string]memoryEntry{}, now: time.Now}
}

func (m *MemoryStatusStore) Set(ctx context.Context, s Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.entries[s.ID] = memoryEntry{status: s, expiresAt: now.Add(m.ttl)}
	m.sets++
	if m.sets%1024 == 0 {
		for id, e := range m.entries {
			if now.After(e.expiresAt) {
				delete(m.entries, id)
			}
		}
	}
	return nil
}

func (m *MemoryStatusStore) Get(ctx context.Context, id primitive.ObjectID) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id.Hex()]
	if !ok {
		return nil, ErrUnknownRecord
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, id.Hex())
		return nil, ErrUnknownRecord
	}
	s := e.status
	return &s, nil
}
