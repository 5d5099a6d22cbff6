package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/api/middleware"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type PostHandler struct {
	postService    ports.PostService
	commentService ports.CommentService
}

func NewPostHandler(postService ports.PostService, commentService ports.CommentService) *PostHandler {
	return &PostHandler{postService: postService, commentService: commentService}
}

type postRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Excerpt string `json:"excerpt" validate:"max=500"`
	Content string `json:"content" validate:"required"`
	Publish bool   `json:"publish"`
}

type commentRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

type postPage struct {
	Posts      []domain.Post `json:"posts"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int64         `json:"total"`
	TotalPages int64         `json:"total_pages"`
}

// List returns published posts. Authenticated callers also see drafts.
//
// @Summary      List blog posts
// @Tags         posts
// @Produce      json
// @Param        page   query  int     false  "Page number"
// @Param        limit  query  int     false  "Page size"
// @Param        q      query  string  false  "Search in title and content"
// @Success      200  {object}  postPage
// @Router       /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	q := ports.PostListQuery{
		Page:          page,
		Limit:         limit,
		Search:        c.QueryParam("q"),
		PublishedOnly: middleware.PrincipalFrom(c) == nil,
	}

	posts, total, err := h.postService.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newPostPage(posts, q.Page, q.Limit, total))
}

func newPostPage(posts []domain.Post, page, limit int, total int64) postPage {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	if posts == nil {
		posts = []domain.Post{}
	}
	return postPage{Posts: posts, Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// GetBySlug returns one published post. Drafts respond 404.
//
// @Summary      Get a post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{slug} [get]
func (h *PostHandler) GetBySlug(c echo.Context) error {
	post, err := h.postService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"post": post})
}

// Create adds a post authored by the authenticated user.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Create(c.Request().Context(), principal, ports.PostInput{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Publish: req.Publish,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"post": post})
}

// Update edits a post. Only the author or an admin may update.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]string
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Update(c.Request().Context(), principal, id, ports.PostInput{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Publish: req.Publish,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"post": post})
}

// Delete removes a post. Only the author or an admin may delete.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), principal, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted"})
}

// ListComments returns the comments of a published post.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{slug}/comments [get]
func (h *PostHandler) ListComments(c echo.Context) error {
	comments, err := h.commentService.ListForPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	return c.JSON(http.StatusOK, map[string]any{"comments": comments})
}

// AddComment attaches a comment to a published post.
//
// @Summary      Add a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string  true  "Post slug"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/posts/{slug}/comments [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Add(c.Request().Context(), principal, c.Param("slug"), req.Body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"comment": comment})
}

// DeleteComment removes a comment. Only the author or an admin may delete.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Comment ID"
// @Success      200  {object}  map[string]string
// @Router       /api/comments/{id} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), principal, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "comment deleted"})
}
