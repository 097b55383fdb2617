package service

import (
	"context"

	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/writer"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines the record operations used by the handler layer.
type Service interface {
	// Record creates a record and hands it to background persistence.
	// It never waits for the connection or the write.
	Record(ctx context.Context) *blog.Record
	Count(ctx context.Context, name string) (int64, error)
	Status(ctx context.Context, id primitive.ObjectID) (*writer.Status, error)
}

// Connector starts establishing the store connection; failures are its own concern.
type Connector interface {
	Connect(ctx context.Context)
}

// Writer accepts records for background persistence and reports their outcome.
type Writer interface {
	Submit(ctx context.Context, rec *blog.Record) bool
	Status(ctx context.Context, id primitive.ObjectID) (*writer.Status, error)
}

// Counter counts stored records per blog value.
type Counter interface {
	CountByBlog(ctx context.Context, name string) (int64, error)
}

// New returns a Service over the given connection, writer and record store.
func New(conn Connector, w Writer, records Counter) Service {
	return &recordService{conn: conn, writer: w, records: records}
}

type recordService struct {
	conn    Connector
	writer  Writer
	records Counter
}

func (s *recordService) Record(ctx context.Context) *blog.Record {
	go s.conn.Connect(context.WithoutCancel(ctx))

	rec := blog.NewRecord()
	s.writer.Submit(ctx, rec)
	return rec
}

func (s *recordService) Count(ctx context.Context, name string) (int64, error) {
	return s.records.CountByBlog(ctx, name)
}

func (s *recordService) Status(ctx context.Context, id primitive.ObjectID) (*writer.Status, error) {
	return s.writer.Status(ctx, id)
}
