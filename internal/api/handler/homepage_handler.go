package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type HomepageHandler struct {
	projectService ports.ProjectService
	postService    ports.PostService
	adminService   ports.AdminService
}

func NewHomepageHandler(projectService ports.ProjectService, postService ports.PostService, adminService ports.AdminService) *HomepageHandler {
	return &HomepageHandler{projectService: projectService, postService: postService, adminService: adminService}
}

const homepageRecentItems = 3

// Show aggregates the landing-page payload: recent projects, recent posts
// and the site counters.
//
// @Summary      Homepage data
// @Tags         public
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/homepage [get]
func (h *HomepageHandler) Show(c echo.Context) error {
	ctx := c.Request().Context()

	projects, err := h.projectService.Recent(ctx, homepageRecentItems)
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []domain.Project{}
	}

	posts, err := h.postService.RecentPublished(ctx, homepageRecentItems)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	stats, err := h.adminService.Stats(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"recent_projects": projects,
		"recent_posts":    posts,
		"stats":           stats,
	})
}
