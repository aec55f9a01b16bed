package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles comment submission
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers the comment routes, all behind auth
func (h *CommentHandler) RegisterCommentRoutes(protected *echo.Group) {
	protected.POST("/posts/:id/comment/", h.AddComment)
}

// AddComment appends a comment to a post and redirects back to the post
// detail page. Empty text redirects back without writing anything.
func (h *CommentHandler) AddComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	text := strings.TrimSpace(c.FormValue("text"))
	if text == "" {
		return c.Redirect(http.StatusFound, detailURL)
	}

	comment := &models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: getCurrentUser(c).ID,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, detailURL)
}
