package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
)

// ProjectHandler serves the public project gallery.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type listProjectsResponse struct {
	Success  bool             `json:"success"`
	Projects []domain.Project `json:"projects"`
}

// List handles GET /projects. It always answers 200; store problems are
// absorbed by the service's static fallback.
//
// @Summary      List portfolio projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  listProjectsResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects := h.service.ListProjects(c.Request().Context())
	if projects == nil {
		projects = []domain.Project{}
	}
	return c.JSON(http.StatusOK, listProjectsResponse{Success: true, Projects: projects})
}
