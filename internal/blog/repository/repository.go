package repository

import (
	"context"
	"errors"

	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repository provides record persistence operations. Records are never updated or deleted.
type Repository interface {
	Insert(ctx context.Context, r *blog.Record) error
	Get(ctx context.Context, id primitive.ObjectID) (*blog.Record, error)
	CountByBlog(ctx context.Context, name string) (int64, error)
}
