package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"alemsite/internal/service"
)

// OpinionHandler handles visitor opinion endpoints.
type OpinionHandler struct {
	opinionService service.OpinionService
}

// NewOpinionHandler creates a new opinion handler.
func NewOpinionHandler(opinionService service.OpinionService) *OpinionHandler {
	return &OpinionHandler{opinionService: opinionService}
}

// SubmitOpinionRequest represents a visitor opinion submission.
type SubmitOpinionRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Location string `json:"location"`
	Title    string `json:"title"`
	Opinion  string `json:"opinion" validate:"required"`
	Rating   int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// SetApprovalRequest represents a moderation decision.
type SetApprovalRequest struct {
	IsApproved *bool `json:"isApproved" validate:"required"`
}

// Submit godoc
// @Summary Submit a visitor opinion
// @Tags opinions
// @Accept json
// @Produce json
// @Param request body SubmitOpinionRequest true "Opinion data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /opinions [post]
func (h *OpinionHandler) Submit(c echo.Context) error {
	var req SubmitOpinionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	opinion, err := h.opinionService.Submit(c.Request().Context(), service.SubmitOpinionInput{
		Name:     req.Name,
		Email:    req.Email,
		Location: req.Location,
		Title:    req.Title,
		Text:     req.Opinion,
		Rating:   req.Rating,
	})
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusCreated, "opinion submitted successfully, waiting for approval", opinion)
}

// ListApproved godoc
// @Summary List approved opinions
// @Tags opinions
// @Produce json
// @Success 200 {object} Envelope
// @Router /opinions [get]
func (h *OpinionHandler) ListApproved(c echo.Context) error {
	opinions, err := h.opinionService.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, opinions, len(opinions))
}

// ListAll godoc
// @Summary List all opinions, optionally filtered by approval
// @Tags opinions
// @Produce json
// @Security BearerAuth
// @Param isApproved query bool false "Approval filter"
// @Success 200 {object} Envelope
// @Router /dashboard/opinions [get]
func (h *OpinionHandler) ListAll(c echo.Context) error {
	var approved *bool
	switch c.QueryParam("isApproved") {
	case "true":
		v := true
		approved = &v
	case "false":
		v := false
		approved = &v
	}

	opinions, err := h.opinionService.ListAll(c.Request().Context(), approved)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, opinions, len(opinions))
}

// SetApproval godoc
// @Summary Approve or reject an opinion
// @Tags opinions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Opinion id"
// @Param request body SetApprovalRequest true "Approval decision"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /dashboard/opinions/{id} [patch]
func (h *OpinionHandler) SetApproval(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req SetApprovalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	opinion, err := h.opinionService.SetApproval(c.Request().Context(), id, *req.IsApproved)
	if err != nil {
		return err
	}

	message := "opinion rejected successfully"
	if *req.IsApproved {
		message = "opinion approved successfully"
	}
	return respondMessage(c, http.StatusOK, message, opinion)
}

// Delete godoc
// @Summary Delete an opinion
// @Tags opinions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Opinion id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /dashboard/opinions/{id} [delete]
func (h *OpinionHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.opinionService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "opinion deleted successfully", struct{}{})
}
