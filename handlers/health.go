package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessChecker reports whether the store connection is established and can
// start establishing it. It is satisfied by *database.Manager.
type ReadinessChecker interface {
	Connect(ctx context.Context)
	Connected() bool
}

// readyConnectTimeout bounds the connection attempt a readiness check may make.
const readyConnectTimeout = 2 * time.Second

// QueueReporter reports writer queue pressure.
type QueueReporter interface {
	Pending() int
}

// RegisterHealth registers the liveness and readiness endpoints.
// /ready attempts the MongoDB connection when it is not open yet and returns
// 200 only once it is, so a fresh instance does not depend on traffic to connect.
func RegisterHealth(r *gin.Engine, db ReadinessChecker, q QueueReporter, started time.Time) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		if !db.Connected() {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readyConnectTimeout)
			db.Connect(ctx)
			cancel()
		}
		deps := gin.H{"mongo": db.Connected()}
		if q != nil {
			deps["pending_writes"] = q.Pending()
		}
		uptime := time.Since(started).String()
		if !db.Connected() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
