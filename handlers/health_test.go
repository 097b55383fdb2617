package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hackdb/hackdb/backend/go-services/internal/database"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeDeps struct {
	connected bool
	reachable bool
	dials     int
	pending   int
}

func (f *fakeDeps) Connect(ctx context.Context) {
	f.dials++
	if f.reachable {
		f.connected = true
	}
}
func (f *fakeDeps) Connected() bool { return f.connected }
func (f *fakeDeps) Pending() int    { return f.pending }

func TestHealthAndReady(t *testing.T) {
	p := &fakeDeps{pending: 3}
	g := gin.New()
	RegisterHealth(g, p, p, time.Now())

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", w.Body.String())

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	require.Equal(t, 1, p.dials, "an unready check should attempt the connection")

	p.reachable = true
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string                 `json:"status"`
		Deps   map[string]interface{} `json:"deps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ready", body.Status)
	require.Equal(t, true, body.Deps["mongo"])
	require.Equal(t, float64(3), body.Deps["pending_writes"])
}

func TestReady_ConnectsWithoutPriorTraffic(t *testing.T) {
	var dials atomic.Int32
	mgr := database.NewManager("mongodb://mongodb/hackdb", "hackdb", time.Second).WithDialer(
		func(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
			dials.Add(1)
			return mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:27017"))
		})
	defer mgr.Disconnect(context.Background())

	g := gin.New()
	RegisterHealth(g, mgr, nil, time.Now())

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int32(1), dials.Load())

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int32(1), dials.Load(), "a connected manager must not dial again")
}
