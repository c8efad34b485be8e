package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Redis     string    `json:"redis,omitempty"`
	Chat      string    `json:"chat"`
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger wraps the redis client ping so tests can stub it.
type RedisPinger func(ctx context.Context) error

type HealthHandler struct {
	serviceName   string
	version       string
	db            Pinger
	redis         RedisPinger
	chatAvailable bool
}

func NewHealthHandler(serviceName, version string, db Pinger, redis RedisPinger, chatAvailable bool) *HealthHandler {
	return &HealthHandler{
		serviceName:   serviceName,
		version:       version,
		db:            db,
		redis:         redis,
		chatAvailable: chatAvailable,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = probe(c.Request.Context(), h.db.PingContext)
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = probe(c.Request.Context(), h.redis)
	}

	status := "healthy"
	if dbStatus == "down" || redisStatus == "down" {
		status = "degraded"
	}

	chat := "unavailable"
	if h.chatAvailable {
		chat = "available"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Redis:     redisStatus,
		Chat:      chat,
	})
}

func probe(ctx context.Context, ping func(context.Context) error) string {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
