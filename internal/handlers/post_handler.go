package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/Devepooper/yatube/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles the post detail view and the post create/edit
// forms.
type PostHandler struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	commentRepository repositories.CommentRepository
	store             storage.Store
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	commentRepo repositories.CommentRepository,
	store storage.Store,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		commentRepository: commentRepo,
		store:             store,
	}
}

// RegisterPostRoutes registers the public post routes
func (h *PostHandler) RegisterPostRoutes(public *echo.Group) {
	public.GET("/posts/:id/", h.PostDetail)
}

// RegisterProtectedPostRoutes registers the routes requiring a session
func (h *PostHandler) RegisterProtectedPostRoutes(protected *echo.Group) {
	protected.GET("/create/", h.CreatePostForm)
	protected.POST("/create/", h.CreatePost)
	protected.GET("/posts/:id/edit/", h.EditPostForm)
	protected.POST("/posts/:id/edit/", h.EditPost)
}

func (h *PostHandler) loadPost(c echo.Context) (*models.Post, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return post, nil
}

// PostDetail renders a single post with its comments.
func (h *PostHandler) PostDetail(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "posts/post_detail.html", renderData(c, echo.Map{
		"Post":     post,
		"Comments": comments,
	}))
}

// bindPostForm reads the submitted form fields. The group select sends
// an empty value when no group is chosen.
func bindPostForm(c echo.Context) models.PostForm {
	form := models.PostForm{Text: strings.TrimSpace(c.FormValue("text"))}
	if raw := c.FormValue("group"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			groupID := uint(id)
			form.GroupID = &groupID
		}
	}
	return form
}

func validatePostForm(form models.PostForm) map[string]string {
	fieldErrors := make(map[string]string)
	validate := validator.New()
	if err := validate.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldError := range validationErrors {
				fieldErrors[strings.ToLower(fieldError.Field())] = "This field is required."
			}
		}
	}
	return fieldErrors
}

// saveImage stores an uploaded image when one was attached. It returns
// the stored path, or "" when the form had no file.
func (h *PostHandler) saveImage(c echo.Context, fieldErrors map[string]string) string {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "" // no file attached
	}
	if !storage.AllowedImage(fileHeader.Filename) {
		fieldErrors["image"] = "Unsupported image format."
		return ""
	}

	file, err := fileHeader.Open()
	if err != nil {
		fieldErrors["image"] = "Could not read the uploaded file."
		return ""
	}
	defer file.Close()

	path, err := h.store.Save(c.Request().Context(), file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		fieldErrors["image"] = "Could not store the uploaded file."
		return ""
	}
	return path
}

func (h *PostHandler) renderPostForm(c echo.Context, form models.PostForm, fieldErrors map[string]string, isEdit bool) error {
	groups, err := h.groupRepository.ListGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// Validation errors re-render the form with HTTP 200.
	return c.Render(http.StatusOK, "posts/create_post.html", renderData(c, echo.Map{
		"Form":   form,
		"Errors": fieldErrors,
		"Groups": groups,
		"IsEdit": isEdit,
	}))
}

// CreatePostForm renders the empty post form.
func (h *PostHandler) CreatePostForm(c echo.Context) error {
	return h.renderPostForm(c, models.PostForm{}, map[string]string{}, false)
}

// CreatePost persists a new post authored by the current user and
// redirects to their profile feed.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user := getCurrentUser(c)
	form := bindPostForm(c)

	fieldErrors := validatePostForm(form)
	image := ""
	if len(fieldErrors) == 0 {
		image = h.saveImage(c, fieldErrors)
	}
	if len(fieldErrors) > 0 {
		return h.renderPostForm(c, form, fieldErrors, false)
	}

	post := &models.Post{
		Text:     form.Text,
		GroupID:  form.GroupID,
		Image:    image,
		AuthorID: user.ID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}

// EditPostForm renders the edit form, prefilled. Only the author may
// edit; anyone else is sent back to the post detail page.
func (h *PostHandler) EditPostForm(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}
	if post.AuthorID != getCurrentUser(c).ID {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
	}

	form := models.PostForm{Text: post.Text, GroupID: post.GroupID}
	return h.renderPostForm(c, form, map[string]string{}, true)
}

// EditPost updates the post's text, group and image. Authorship and the
// creation timestamp never change.
func (h *PostHandler) EditPost(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}
	if post.AuthorID != getCurrentUser(c).ID {
		return c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
	}

	form := bindPostForm(c)
	fieldErrors := validatePostForm(form)
	image := ""
	if len(fieldErrors) == 0 {
		image = h.saveImage(c, fieldErrors)
	}
	if len(fieldErrors) > 0 {
		return h.renderPostForm(c, form, fieldErrors, true)
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if image != "" {
		post.Image = image
	}
	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}
