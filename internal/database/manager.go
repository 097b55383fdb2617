package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hackdb/hackdb/backend/go-services/pkg/logger"
	"github.com/hackdb/hackdb/backend/go-services/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Database after Disconnect.
var ErrClosed = errors.New("connection manager closed")

// DialFunc establishes a verified client connection.
type DialFunc func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error)

// Manager owns the single shared MongoDB client of the service.
// The client is created on first use; concurrent first uses share one
// dial attempt and a failed attempt is not remembered.
type Manager struct {
	uri      string
	database string
	timeout  time.Duration
	dial     DialFunc

	group  singleflight.Group
	mu     sync.RWMutex
	client *mongo.Client
	closed bool
}

// NewManager returns a Manager for the given URI and database name. Nothing is dialed yet.
func NewManager(uri, database string, timeout time.Duration) *Manager {
	return &Manager{uri: uri, database: database, timeout: timeout, dial: ConnectMongo}
}

// WithDialer replaces the dial function; intended for tests.
func (m *Manager) WithDialer(d DialFunc) *Manager {
	m.dial = d
	return m
}

// Connect establishes the connection if needed and logs the outcome.
// It never reports failure to the caller; a later call retries from scratch.
func (m *Manager) Connect(ctx context.Context) {
	if m.Connected() {
		return
	}
	if _, err := m.ensure(ctx); err != nil {
		logger.Errorf("unable to connect to DB. msg: %v", err)
	}
}

// Database returns the configured database, connecting first when necessary.
func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := m.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.database), nil
}

// Connected reports whether a verified client is held.
func (m *Manager) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client != nil
}

// Disconnect releases the client. The manager can not be reused afterwards.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.closed = true
	m.mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func (m *Manager) ensure(ctx context.Context) (*mongo.Client, error) {
	m.mu.RLock()
	client, closed := m.client, m.closed
	m.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if client != nil {
		return client, nil
	}

	v, err, _ := m.group.Do("connect", func() (interface{}, error) {
		m.mu.RLock()
		existing := m.client
		m.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		c, err := m.dial(ctx, m.uri, m.timeout)
		if err != nil {
			metrics.MongoConnects.WithLabelValues("error").Inc()
			return nil, err
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed {
			_ = c.Disconnect(context.Background())
			return nil, ErrClosed
		}
		m.client = c
		metrics.MongoConnects.WithLabelValues("ok").Inc()
		logger.Infof("connection successful: database=%s", m.database)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}
