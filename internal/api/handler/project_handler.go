package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	Title        string   `json:"title"        validate:"required,max=100"`
	Description  string   `json:"description"  validate:"required,max=5000"`
	Technologies []string `json:"technologies" validate:"max=30,dive,max=50"`
	StartDate    string   `json:"start_date"   validate:"required"`
	EndDate      string   `json:"end_date"     validate:"omitempty"`
	Status       string   `json:"status"       validate:"omitempty,oneof=active completed on-hold"`
	ImageURL     string   `json:"image_url"    validate:"omitempty,max=255"`
	ProjectURL   string   `json:"project_url"  validate:"omitempty,url,max=255"`
}

type projectPage struct {
	Projects   []domain.Project `json:"projects"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"total_pages"`
}

const dateLayout = "2006-01-02"

func (r *projectRequest) toInput() (ports.ProjectInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return ports.ProjectInput{}, echo.NewHTTPError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}

	var end *time.Time
	if r.EndDate != "" {
		parsed, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return ports.ProjectInput{}, echo.NewHTTPError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		}
		end = &parsed
	}

	return ports.ProjectInput{
		Title:        r.Title,
		Description:  r.Description,
		Technologies: r.Technologies,
		StartDate:    start,
		EndDate:      end,
		Status:       domain.ProjectStatus(r.Status),
		ImageURL:     r.ImageURL,
		ProjectURL:   r.ProjectURL,
	}, nil
}

// List returns a filtered, paginated view of all projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Param        q       query  string  false  "Search in title and description"
// @Param        status  query  string  false  "Filter by status"
// @Success      200  {object}  projectPage
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	q := ports.ProjectListQuery{
		Page:   page,
		Limit:  limit,
		Search: c.QueryParam("q"),
		Status: domain.ProjectStatus(c.QueryParam("status")),
	}

	projects, total, err := h.projectService.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newProjectPage(projects, q.Page, q.Limit, total))
}

func newProjectPage(projects []domain.Project, page, limit int, total int64) projectPage {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	if projects == nil {
		projects = []domain.Project{}
	}
	return projectPage{Projects: projects, Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// Get returns one project by id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"project": project})
}

// Create adds a project owned by the authenticated user.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), principal, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"project": project})
}

// Update replaces a project. Only the owner or an admin may update.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	project, err := h.projectService.Update(c.Request().Context(), principal, id, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"project": project})
}

// Delete removes a project. Only the owner or an admin may delete.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Request().Context(), principal, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted"})
}
