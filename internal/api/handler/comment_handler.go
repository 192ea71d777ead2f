package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olympicapp/country-comments/internal/api/metrics"
	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Content has no validation tags: blank content is reported by the comment
// workflow, after the login check when login is required.
type postCommentRequest struct {
	Content string `json:"content"`
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyContent):
		return "empty_content"
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "not_logged_in"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}

// List returns the comments for a country in posting order.
//
// @Summary      List comments for a country
// @Tags         comments
// @Produce      json
// @Param        countryCode  path   string  true  "Country code"
// @Success      200          {array}  domain.Comment
// @Router       /api/comments/{countryCode} [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.commentService.ListByCountry(c.Request().Context(), c.Param("countryCode"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Create posts a comment as the logged-in user, or as Guest when anonymous
// posting is enabled.
//
// @Summary      Post a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        countryCode  path      string              true  "Country code"
// @Param        body         body      postCommentRequest  true  "Comment"
// @Success      200          {object}  StatusResponse
// @Failure      400          {object}  StatusResponse
// @Failure      401          {object}  StatusResponse
// @Failure      404          {object}  StatusResponse
// @Router       /api/comments/{countryCode} [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req postCommentRequest
	if err := c.Bind(&req); err != nil {
		// An unreadable body counts as no content; the workflow decides
		// whether the login check or the content check answers first.
		req = postCommentRequest{}
	}
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	comment, err := h.commentService.Post(c.Request().Context(), sess, c.Param("countryCode"), req.Content)
	if err != nil {
		metrics.CommentsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return err
	}

	author := "user"
	if comment.UserID == nil {
		author = "guest"
	}
	metrics.CommentsPostedTotal.WithLabelValues(author).Inc()
	return c.JSON(http.StatusOK, ack("Comment added successfully"))
}

// Delete removes a comment by id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  StatusResponse
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.CommentsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, ack("Comment deleted successfully"))
}
