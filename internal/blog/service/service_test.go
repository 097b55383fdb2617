package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/repository"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/writer"
	"github.com/stretchr/testify/require"
)

type countingConn struct{ calls atomic.Int32 }

func (c *countingConn) Connect(ctx context.Context) { c.calls.Add(1) }

func TestRecordConnectsAndSubmits(t *testing.T) {
	repo := repository.NewMemoryRepo()
	wr := writer.New(repo, writer.NewMemoryStatusStore(time.Minute), writer.Options{})
	wr.Start(context.Background())
	conn := &countingConn{}
	svc := New(conn, wr, repo)

	ctx := context.Background()
	rec := svc.Record(ctx)
	require.Equal(t, blog.DefaultBlog, rec.Blog)
	require.GreaterOrEqual(t, rec.Num, 0.0)
	require.Less(t, rec.Num, 1.0)
	wr.Stop()

	require.Eventually(t, func() bool { return conn.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	n, err := svc.Count(ctx, blog.DefaultBlog)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	s, err := svc.Status(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, writer.StateSaved, s.State)
}
