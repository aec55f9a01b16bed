package handlers

import (
	"strconv"

	"github.com/Devepooper/yatube/internal/middleware"
	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/labstack/echo/v4"
)

// pageSize is the number of posts per feed page.
const pageSize = 10

// Page is one slice of a feed, with the navigation state the paginator
// partial needs.
type Page struct {
	Posts      []models.Post
	Number     int
	Total      int64
	HasPrev    bool
	HasNext    bool
	PrevNumber int
	NextNumber int
}

// getCurrentUser returns the authenticated user, or nil for anonymous
// requests.
func getCurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(middleware.CurrentUserKey).(*models.User)
	return user
}

// renderData decorates view context with the fields every template
// expects.
func renderData(c echo.Context, data echo.Map) echo.Map {
	if user := getCurrentUser(c); user != nil {
		data["CurrentUser"] = user
	}
	return data
}

// pageNumber parses the ?page query parameter, defaulting to 1.
func pageNumber(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate loads one page of the filtered feed. A page past the end of
// the results is an empty page, not an error.
func paginate(postRepo repositories.PostRepository, filter repositories.PostFilter, page int) (*Page, error) {
	total, err := postRepo.CountPosts(filter)
	if err != nil {
		return nil, err
	}

	posts, err := postRepo.ListPosts(filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &Page{
		Posts:      posts,
		Number:     page,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    int64(page*pageSize) < total,
		PrevNumber: page - 1,
		NextNumber: page + 1,
	}, nil
}
