package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// Probe checks one backing service for the readiness endpoint.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// MongoProbe pings the database.
func MongoProbe(db *mongo.Database) Probe {
	return Probe{Name: "mongodb", Check: func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}}
}

// RedisProbe pings the rate limiter store.
func RedisProbe(rdb *redis.Client) Probe {
	return Probe{Name: "redis", Check: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
}

// BrokerChecker reports whether the message broker connection is usable.
type BrokerChecker interface {
	Healthy() error
}

// BrokerProbe asks the activity publisher about its connection.
func BrokerProbe(b BrokerChecker) Probe {
	return Probe{Name: "amqp", Check: func(context.Context) error { return b.Healthy() }}
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	probes  []Probe
	started time.Time
}

func NewHealthHandler(probes ...Probe) *HealthHandler {
	return &HealthHandler{probes: probes, started: time.Now()}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness handles GET /health. It never touches a dependency.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(h.started).Seconds()),
	})
}

// Readiness handles GET /health/ready: 200 when every probe passes, 503
// with the failing dependencies otherwise.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	resp := readinessResponse{Status: "ok", Dependencies: make(map[string]dependencyStatus, len(h.probes))}
	code := http.StatusOK
	for _, p := range h.probes {
		if err := p.Check(ctx); err != nil {
			resp.Dependencies[p.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[p.Name] = dependencyStatus{Status: "ok"}
	}
	return c.JSON(code, resp)
}
