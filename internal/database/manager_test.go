package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lazyClient returns a client that has not talked to any server yet;
// the v1 driver only dials on the first operation.
func lazyClient(t *testing.T) *mongo.Client {
	t.Helper()
	c, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:27017"))
	require.NoError(t, err)
	return c
}

func TestManager_ConnectFailureIsSwallowedAndRetried(t *testing.T) {
	var calls atomic.Int32
	m := NewManager("mongodb://mongodb/hackdb", "hackdb", time.Second).WithDialer(
		func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
			calls.Add(1)
			return nil, errors.New("no reachable servers")
		})

	require.NotPanics(t, func() {
		m.Connect(context.Background())
		m.Connect(context.Background())
	})
	require.False(t, m.Connected())
	require.Equal(t, int32(2), calls.Load(), "failed attempts must not be cached")

	_, err := m.Database(context.Background())
	require.Error(t, err)
}

func TestManager_ConnectIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	client := lazyClient(t)
	m := NewManager("mongodb://mongodb/hackdb", "hackdb", time.Second).WithDialer(
		func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
			calls.Add(1)
			return client, nil
		})

	m.Connect(context.Background())
	m.Connect(context.Background())
	require.True(t, m.Connected())
	require.Equal(t, int32(1), calls.Load())

	db, err := m.Database(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hackdb", db.Name())

	require.NoError(t, m.Disconnect(context.Background()))
	require.False(t, m.Connected())
	_, err = m.Database(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestManager_ConcurrentConnectDialsOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	client := lazyClient(t)
	m := NewManager("mongodb://mongodb/hackdb", "hackdb", time.Second).WithDialer(
		func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
			calls.Add(1)
			<-release
			return client, nil
		})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Connect(context.Background())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.True(t, m.Connected())
	require.Equal(t, int32(1), calls.Load())
	require.NoError(t, m.Disconnect(context.Background()))
}

func TestManager_UnreachableAddressDoesNotRaise(t *testing.T) {
	m := NewManager("mongodb://127.0.0.1:1/hackdb", "hackdb", 200*time.Millisecond)
	require.NotPanics(t, func() { m.Connect(context.Background()) })
	require.False(t, m.Connected())
}
