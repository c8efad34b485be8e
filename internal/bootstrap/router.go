package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/promptforge/promptforge-backend/config"
	httpapi "github.com/promptforge/promptforge-backend/internal/api/http"
	"github.com/promptforge/promptforge-backend/internal/api/http/middleware"
	convhttp "github.com/promptforge/promptforge-backend/internal/conversation/http"
	convservice "github.com/promptforge/promptforge-backend/internal/conversation/service"
	"github.com/promptforge/promptforge-backend/internal/conversation/session"
	"github.com/promptforge/promptforge-backend/internal/llm"
	projhttp "github.com/promptforge/promptforge-backend/internal/projects/http"
	"github.com/promptforge/promptforge-backend/internal/projects/repository"
	projservice "github.com/promptforge/promptforge-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Session        config.SessionConfig
	DB             *sql.DB
	Redis          *redis.Client
	Gateway        *llm.Gateway // nil when chat is unavailable
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders:    []string{"Location", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	var gateway convservice.Gateway
	if dep.Gateway != nil {
		gateway = dep.Gateway
	}

	var redisPing httpapi.RedisPinger
	if dep.Redis != nil {
		redisPing = func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() }
	}
	var dbPing httpapi.Pinger
	if dep.DB != nil {
		dbPing = dep.DB
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dbPing, redisPing, gateway != nil)
	healthHandler.RegisterRoutes(r)

	projectRepo := repository.NewProjectRepository(dep.DB)
	states := session.NewStore(dep.Redis, dep.Session.TTL)
	workflow := convservice.NewWorkflow(states, gateway, projectRepo)

	api := r.Group("/api/v1")
	api.Use(middleware.SessionMiddleware(middleware.SessionOptions{
		CookieName: dep.Session.CookieName,
		Secret:     dep.Session.Secret,
		TTL:        dep.Session.TTL,
		Secure:     dep.Session.Secure,
	}))

	projectsGroup := api.Group("/projects")
	projhttp.New(projservice.NewProjectService(projectRepo)).Register(projectsGroup)
	convhttp.New(workflow).Register(projectsGroup)

	return r
}
