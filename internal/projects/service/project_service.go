package service

import (
	"context"

	"github.com/promptforge/promptforge-backend/internal/projects/domain"
)

// ProjectReader is the read side of the project store.
type ProjectReader interface {
	ListAll(ctx context.Context) ([]domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo ProjectReader
}

// NewProjectService creates a new project service
func NewProjectService(repo ProjectReader) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

// List returns all projects, newest first
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.ListAll(ctx)
}

// Get returns a single project or domain.ErrNotFound
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}
