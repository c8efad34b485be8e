package bootstrap

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge-backend/config"
)

func testRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := BuildRouter(RouterDeps{
		ServiceName:    "promptforge",
		Version:        "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		Session:        config.SessionConfig{Secret: "s", CookieName: "pf_session", TTL: time.Hour},
		DB:             db,
		Redis:          client,
	})
	return r, mock
}

func TestBuildRouterServesProjects(t *testing.T) {
	r, mock := testRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM projects").WillReturnRows(sqlmock.NewRows([]string{
		"id", "name", "description", "refined_prompt", "frameworks_languages",
		"checklist_steps", "cursor_rules_content", "created_at", "updated_at",
	}))
	mock.ExpectCommit()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildRouterCreateRouteWithoutGateway(t *testing.T) {
	r, _ := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects/create", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"chat_available":false`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/create",
		bytes.NewBufferString(`{"action":"start_chat","name":"Blog"}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestBuildRouterHealth(t *testing.T) {
	r, _ := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"redis":"up"`)
}
