package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge-backend/internal/projects/domain"
	"github.com/promptforge/promptforge-backend/internal/projects/service"
)

type memProjects struct {
	items []domain.Project
	err   error
}

func (m *memProjects) ListAll(context.Context) ([]domain.Project, error) {
	return m.items, m.err
}

func (m *memProjects) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func setupRouter(store *memProjects) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(service.NewProjectService(store)).Register(r.Group("/api/v1/projects"))
	return r
}

func TestListProjects(t *testing.T) {
	now := time.Now().UTC()
	r := setupRouter(&memProjects{items: []domain.Project{
		{ID: 2, Name: "Shop", CreatedAt: now},
		{ID: 1, Name: "Blog", CreatedAt: now.Add(-time.Hour)},
	}})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		OK       bool             `json:"ok"`
		Projects []domain.Project `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.OK)
	require.Len(t, body.Projects, 2)
	assert.Equal(t, "Shop", body.Projects[0].Name)
}

func TestListProjectsStoreError(t *testing.T) {
	r := setupRouter(&memProjects{err: errors.New("db down")})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestProjectDetail(t *testing.T) {
	r := setupRouter(&memProjects{items: []domain.Project{{ID: 5, Name: "Blog", ChecklistSteps: "1. init"}}})

	cases := []struct {
		path string
		code int
	}{
		{"/api/v1/projects/5", http.StatusOK},
		{"/api/v1/projects/6", http.StatusNotFound},
		{"/api/v1/projects/0", http.StatusNotFound},
		{"/api/v1/projects/abc", http.StatusNotFound},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.code, rr.Code, tc.path)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects/5", nil))
	var body struct {
		Project domain.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "1. init", body.Project.ChecklistSteps)
}
