package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Devepooper/yatube/internal/pagecache"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FeedHandler serves the paginated post listings: the global index, the
// group and profile feeds, and the personalized follow feed.
type FeedHandler struct {
	postRepository   repositories.PostRepository
	groupRepository  repositories.GroupRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	cache            pagecache.Cache
	cacheTTL         time.Duration
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	cache pagecache.Cache,
	cacheTTL time.Duration,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		groupRepository:  groupRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		cache:            cache,
		cacheTTL:         cacheTTL,
	}
}

// RegisterFeedRoutes registers the public feed routes
func (h *FeedHandler) RegisterFeedRoutes(public *echo.Group) {
	public.GET("/", h.Index)
	public.GET("/group/:slug/", h.GroupPosts)
	public.GET("/profile/:username/", h.Profile)
}

// RegisterProtectedFeedRoutes registers the feeds requiring a session
func (h *FeedHandler) RegisterProtectedFeedRoutes(protected *echo.Group) {
	protected.GET("/follow/", h.FollowIndex)
	protected.POST("/admin/cache/clear/", h.ClearCache)
}

// Index renders the global feed. The rendered bytes are cached per page
// for the configured TTL, so reads inside the window return the exact
// previous response even when posts have changed in the meantime.
func (h *FeedHandler) Index(c echo.Context) error {
	page := pageNumber(c)
	key := fmt.Sprintf("index:page=%d", page)
	ctx := c.Request().Context()

	if cached, ok, err := h.cache.Get(ctx, key); err == nil && ok {
		return c.HTMLBlob(http.StatusOK, cached)
	}

	pageObj, err := paginate(h.postRepository, repositories.PostFilter{}, page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	data := renderData(c, echo.Map{"Page": pageObj})
	if err := c.Echo().Renderer.Render(&buf, "posts/index.html", data, c); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.cache.Set(ctx, key, buf.Bytes(), h.cacheTTL); err != nil {
		c.Logger().Warnf("page cache set failed: %v", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// ClearCache drops every cached page immediately. The next index read
// is guaranteed to reflect current data.
func (h *FeedHandler) ClearCache(c echo.Context) error {
	if err := h.cache.Clear(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, "/")
}

// GroupPosts renders the feed of a single group.
func (h *FeedHandler) GroupPosts(c echo.Context) error {
	group, err := h.groupRepository.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pageObj, err := paginate(h.postRepository, repositories.PostFilter{GroupID: group.ID}, pageNumber(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "posts/group_list.html", renderData(c, echo.Map{
		"Group": group,
		"Page":  pageObj,
	}))
}

// Profile renders one author's feed.
func (h *FeedHandler) Profile(c echo.Context) error {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pageObj, err := paginate(h.postRepository, repositories.PostFilter{AuthorID: author.ID}, pageNumber(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isFollowing := false
	if user := getCurrentUser(c); user != nil && user.ID != author.ID {
		isFollowing, _ = h.followRepository.IsFollowing(user.ID, author.ID)
	}

	return c.Render(http.StatusOK, "posts/profile.html", renderData(c, echo.Map{
		"Author":      author,
		"Page":        pageObj,
		"IsFollowing": isFollowing,
	}))
}

// FollowIndex renders the personalized feed: posts by every author the
// current user follows, newest first.
func (h *FeedHandler) FollowIndex(c echo.Context) error {
	user := getCurrentUser(c)

	authorIDs, err := h.followRepository.GetFollowedAuthorIDs(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pageObj, err := paginate(h.postRepository, repositories.PostFilter{AuthorIDs: authorIDs}, pageNumber(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "posts/follow.html", renderData(c, echo.Map{
		"Page": pageObj,
	}))
}
