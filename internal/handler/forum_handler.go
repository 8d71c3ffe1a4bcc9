package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"alemsite/internal/middleware"
	"alemsite/internal/model"
	"alemsite/internal/repository"
	"alemsite/internal/service"
)

// ForumHandler handles forum endpoints: posts, comments, categories,
// reactions and stats.
type ForumHandler struct {
	forumService service.ForumService
}

// NewForumHandler creates a new forum handler.
func NewForumHandler(forumService service.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
	Author   string `json:"author"`
}

// UpdatePostRequest represents a partial post update.
type UpdatePostRequest struct {
	Title    *string           `json:"title"`
	Content  *string           `json:"content"`
	Category *string           `json:"category"`
	Status   *model.PostStatus `json:"status" validate:"omitempty,oneof=active pending reported closed"`
}

// ReactRequest represents a reaction request.
type ReactRequest struct {
	ReactionType model.ReactionType `json:"reactionType" validate:"required"`
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	PostID  string `json:"postId" validate:"required,uuid"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"`
}

// UpdateCommentRequest represents a partial comment update.
type UpdateCommentRequest struct {
	Content *string              `json:"content"`
	Status  *model.CommentStatus `json:"status" validate:"omitempty,oneof=approved pending rejected"`
}

// CreateCategoryRequest represents a category creation request.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *ForumHandler) listPosts(c echo.Context, scope repository.Scope) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	viewer, _ := middleware.CurrentUser(c)

	posts, pagination, err := h.forumService.ListPosts(c.Request().Context(), service.ListPostsInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
		Scope:    scope,
		Viewer:   viewer,
	})
	if err != nil {
		return err
	}
	return respondPage(c, http.StatusOK, posts, len(posts), pagination)
}

// ListPosts godoc
// @Summary List publicly visible posts
// @Tags forum
// @Produce json
// @Param category query string false "Category filter, 'all' for no filter"
// @Param search query string false "Case-insensitive match on title or author"
// @Param page query int false "1-indexed page"
// @Param limit query int false "Page size"
// @Success 200 {object} Envelope
// @Router /forum/posts [get]
func (h *ForumHandler) ListPosts(c echo.Context) error {
	return h.listPosts(c, repository.ScopePublic)
}

// ListPostsDashboard lists posts without a status filter for the dashboard.
func (h *ForumHandler) ListPostsDashboard(c echo.Context) error {
	return h.listPosts(c, repository.ScopeAll)
}

// CreatePost godoc
// @Summary Create a post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /forum/posts [post]
func (h *ForumHandler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	viewer, _ := middleware.CurrentUser(c)
	post, err := h.forumService.CreatePost(c.Request().Context(), service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Author:   req.Author,
	}, viewer)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update a post's fields or status
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /forum/posts/{id} [patch]
func (h *ForumHandler) UpdatePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.forumService.UpdatePost(c.Request().Context(), id, service.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post and its comments
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /forum/posts/{id} [delete]
func (h *ForumHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.forumService.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}
	return respondData(c, http.StatusOK, struct{}{})
}

// React godoc
// @Summary React to a post with like or dislike
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param request body ReactRequest true "Reaction"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /forum/posts/{id}/react [post]
func (h *ForumHandler) React(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	viewer, _ := middleware.CurrentUser(c)
	post, err := h.forumService.React(c.Request().Context(), id, viewer, req.ReactionType)
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "reaction added successfully", post)
}

// ListPostComments godoc
// @Summary List comments of a post
// @Tags forum
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} Envelope
// @Router /forum/posts/{id}/comments [get]
func (h *ForumHandler) ListPostComments(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	comments, err := h.forumService.ListCommentsByPost(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, comments, len(comments))
}

func (h *ForumHandler) listComments(c echo.Context, scope repository.Scope) error {
	comments, err := h.forumService.ListComments(c.Request().Context(), scope)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, comments, len(comments))
}

// ListComments godoc
// @Summary List comments, skipping those on closed posts
// @Tags forum
// @Produce json
// @Success 200 {object} Envelope
// @Router /forum/comments [get]
func (h *ForumHandler) ListComments(c echo.Context) error {
	return h.listComments(c, repository.ScopePublic)
}

// ListCommentsDashboard lists all comments for the dashboard.
func (h *ForumHandler) ListCommentsDashboard(c echo.Context) error {
	return h.listComments(c, repository.ScopeAll)
}

// CreateComment godoc
// @Summary Create a comment on a post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /forum/comments [post]
func (h *ForumHandler) CreateComment(c echo.Context) error {
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid postId")
	}

	viewer, _ := middleware.CurrentUser(c)
	comment, err := h.forumService.CreateComment(c.Request().Context(), service.CreateCommentInput{
		PostID:  postID,
		Content: req.Content,
		Author:  req.Author,
	}, viewer)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Update a comment's content or status
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment id"
// @Param request body UpdateCommentRequest true "Fields to update"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /forum/comments/{id} [patch]
func (h *ForumHandler) UpdateComment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.forumService.UpdateComment(c.Request().Context(), id, service.UpdateCommentInput{
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /forum/comments/{id} [delete]
func (h *ForumHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.forumService.DeleteComment(c.Request().Context(), id); err != nil {
		return err
	}
	return respondData(c, http.StatusOK, struct{}{})
}

// ListCategories godoc
// @Summary List categories alphabetically
// @Tags forum
// @Produce json
// @Success 200 {object} Envelope
// @Router /forum/categories [get]
func (h *ForumHandler) ListCategories(c echo.Context) error {
	categories, err := h.forumService.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, categories, len(categories))
}

// CreateCategory godoc
// @Summary Create a category
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category data"
// @Success 201 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /forum/categories [post]
func (h *ForumHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.forumService.CreateCategory(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Rename a category or edit its description
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category id"
// @Param request body UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /forum/categories/{id} [patch]
func (h *ForumHandler) UpdateCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.forumService.UpdateCategory(c.Request().Context(), id, service.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, category)
}

// Stats godoc
// @Summary Forum-wide aggregate counters
// @Tags forum
// @Produce json
// @Success 200 {object} Envelope
// @Router /forum/stats [get]
func (h *ForumHandler) Stats(c echo.Context) error {
	stats, err := h.forumService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, stats)
}
