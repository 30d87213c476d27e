package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
	"github.com/alexmorgan-dev/portfolio-api/internal/metrics"
)

// ProjectService lists projects from the document store and falls back to the
// bundled static list whenever the store is unconfigured, failing or empty.
type ProjectService struct {
	repo     ports.ProjectRepository
	fallback []domain.Project
	log      zerolog.Logger
}

// NewProjectService accepts a nil repo when no document store is configured.
func NewProjectService(repo ports.ProjectRepository, fallback []domain.Project, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, fallback: fallback, log: log}
}

func (s *ProjectService) ListProjects(ctx context.Context) []domain.Project {
	if s.repo == nil {
		return s.static("unconfigured")
	}

	projects, err := s.repo.ListByCreatedDesc(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("project store unavailable, serving static projects")
		return s.static("error")
	}
	if len(projects) == 0 {
		s.log.Debug().Msg("project store empty, serving static projects")
		return s.static("empty")
	}
	return projects
}

// static returns a copy of the fallback list with synthetic ids static-0,
// static-1, ... in list order.
func (s *ProjectService) static(reason string) []domain.Project {
	metrics.ProjectFallbackTotal.WithLabelValues(reason).Inc()

	out := make([]domain.Project, len(s.fallback))
	for i, p := range s.fallback {
		p.ID = domain.StaticIDPrefix + strconv.Itoa(i)
		p.Tags = append([]string(nil), p.Tags...)
		out[i] = p
	}
	return out
}
