package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/service"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/writer"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordIDHeader carries the id of the record created by GET /.
const RecordIDHeader = "X-Record-Id"

// RegisterRecordRoutes registers the record endpoints:
// - GET /                     -> creates a record, always 200 "db connection: <blog>"
// - GET /records              -> count of stored records for ?blog= (default DefaultBlog)
// - GET /records/:id/status   -> write status of one record
func RegisterRecordRoutes(r *gin.Engine, svc service.Service) {
	// The response never waits for the connection or the write.
	r.GET("/", func(c *gin.Context) {
		rec := svc.Record(c.Request.Context())
		c.Header(RecordIDHeader, rec.ID.Hex())
		c.String(http.StatusOK, "db connection: "+rec.Blog)
	})

	r.GET("/records", func(c *gin.Context) {
		name := c.DefaultQuery("blog", blog.DefaultBlog)
		n, err := svc.Count(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"blog": name, "count": n})
	})

	r.GET("/records/:id/status", func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
			return
		}
		s, err := svc.Status(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, writer.ErrUnknownRecord) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s)
	})
}
