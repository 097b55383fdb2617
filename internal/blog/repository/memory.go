package repository

import (
	"context"
	"sync"

	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used for unit tests and for running
// the service without MongoDB.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]blog.Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]blog.Record)}
}

func (m *MemoryRepo) Insert(ctx context.Context, r *blog.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	m.store[r.ID] = *r
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id primitive.ObjectID) (*blog.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.store[id]; ok {
		return &r, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) CountByBlog(ctx context.Context, name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, r := range m.store {
		if r.Blog == name {
			n++
		}
	}
	return n, nil
}

// List returns a snapshot of all stored records in no particular order.
func (m *MemoryRepo) List() []blog.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]blog.Record, 0, len(m.store))
	for _, r := range m.store {
		out = append(out, r)
	}
	return out
}
