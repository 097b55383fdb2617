package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DatabaseProvider hands out the database handle, connecting on demand.
// It is satisfied by *database.Manager.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// MongoRepo implements Repository on the blogs collection. The collection is
// resolved per call so writes issued before the connection opens wait for it.
type MongoRepo struct {
	db         DatabaseProvider
	collection string
}

func NewMongoRepo(db DatabaseProvider) *MongoRepo {
	return &MongoRepo{db: db, collection: blog.Collection}
}

func (m *MongoRepo) col(ctx context.Context) (*mongo.Collection, error) {
	db, err := m.db.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return db.Collection(m.collection), nil
}

func (m *MongoRepo) Insert(ctx context.Context, r *blog.Record) error {
	col, err := m.col(ctx)
	if err != nil {
		return err
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id primitive.ObjectID) (*blog.Record, error) {
	col, err := m.col(ctx)
	if err != nil {
		return nil, err
	}
	var r blog.Record
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (m *MongoRepo) CountByBlog(ctx context.Context, name string) (int64, error) {
	col, err := m.col(ctx)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, bson.M{"blog": name})
}
