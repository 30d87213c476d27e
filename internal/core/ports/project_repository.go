package ports

import (
	"context"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// ProjectRepository reads projects from the document store.
type ProjectRepository interface {
	// ListByCreatedDesc returns all projects, newest first.
	ListByCreatedDesc(ctx context.Context) ([]domain.Project, error)
}

// ProjectService serves the public project listing.
type ProjectService interface {
	// ListProjects never fails; store problems degrade to the static list.
	ListProjects(ctx context.Context) []domain.Project
}
