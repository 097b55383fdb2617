package blog

import (
	"math/rand"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultBlog is the blog value written by the record endpoint.
const DefaultBlog = "My First Blog"

// Collection is where records are stored.
const Collection = "blogs"

// Record is one persisted blog entry. Num is always in [0,1).
type Record struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Blog string             `json:"blog" bson:"blog"`
	Num  float64            `json:"num" bson:"num"`
}

// NewRecord builds a record for DefaultBlog with a fresh id and random Num.
func NewRecord() *Record {
	return &Record{
		ID:   primitive.NewObjectID(),
		Blog: DefaultBlog,
		Num:  rand.Float64(),
	}
}
