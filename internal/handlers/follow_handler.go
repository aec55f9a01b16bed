package handlers

import (
	"errors"
	"net/http"

	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// followFeedURL is where both follow and unfollow land afterwards.
const followFeedURL = "/follow/"

// FollowHandler handles subscribing to and unsubscribing from authors
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers the follow routes, all behind auth
func (h *FollowHandler) RegisterFollowRoutes(protected *echo.Group) {
	protected.GET("/profile/:username/follow/", h.Follow)
	protected.GET("/profile/:username/unfollow/", h.Unfollow)
}

func (h *FollowHandler) loadAuthor(c echo.Context) (*models.User, error) {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return author, nil
}

// Follow subscribes the current user to the target author. Following
// yourself or an author you already follow is a silent no-op; either
// way the request lands on the follow feed.
func (h *FollowHandler) Follow(c echo.Context) error {
	user := getCurrentUser(c)

	author, err := h.loadAuthor(c)
	if err != nil {
		return err
	}

	if author.ID != user.ID {
		following, err := h.followRepository.IsFollowing(user.ID, author.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if !following {
			follow := &models.Follow{FollowerID: user.ID, AuthorID: author.ID}
			if err := h.followRepository.CreateFollow(follow); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
	}

	return c.Redirect(http.StatusFound, followFeedURL)
}

// Unfollow removes the subscription if it exists.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	user := getCurrentUser(c)

	author, err := h.loadAuthor(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(user.ID, author.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, followFeedURL)
}
