// Package content bundles the static fallback content served when live data
// dependencies are unavailable.
package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

//go:embed projects.yaml
var projectsYAML []byte

// StaticProjects decodes the bundled project list. Ids are left empty; the
// project service assigns them.
func StaticProjects() ([]domain.Project, error) {
	return parseProjects(projectsYAML)
}

// MustStaticProjects is StaticProjects for startup wiring.
func MustStaticProjects() []domain.Project {
	projects, err := StaticProjects()
	if err != nil {
		panic(err)
	}
	return projects
}

func parseProjects(raw []byte) ([]domain.Project, error) {
	var projects []domain.Project
	if err := yaml.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("content: decode projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, errors.New("content: static project list is empty")
	}
	for i, p := range projects {
		if p.Name == "" || p.Link == "" {
			return nil, fmt.Errorf("content: project %d is missing name or link", i)
		}
		if p.Tags == nil {
			projects[i].Tags = []string{}
		}
	}
	return projects, nil
}
