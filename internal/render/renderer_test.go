package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/Devepooper/yatube/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPostCard(t *testing.T, post models.Post) string {
	t.Helper()

	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, "partials/post_card", post, nil))
	return buf.String()
}

func TestPostCardLocalImageServedFromMedia(t *testing.T) {
	html := renderPostCard(t, models.Post{
		ID:        1,
		Text:      "with a picture",
		Image:     "posts/abc_small.gif",
		Author:    models.User{Username: "leo"},
		CreatedAt: time.Now(),
	})

	assert.Contains(t, html, `src="/media/posts/abc_small.gif"`)
}

func TestPostCardS3ImageKeepsAbsoluteURL(t *testing.T) {
	html := renderPostCard(t, models.Post{
		ID:        1,
		Text:      "with a picture",
		Image:     "https://bucket.s3.eu-west-1.amazonaws.com/posts/abc_small.gif",
		Author:    models.User{Username: "leo"},
		CreatedAt: time.Now(),
	})

	assert.Contains(t, html, `src="https://bucket.s3.eu-west-1.amazonaws.com/posts/abc_small.gif"`)
	assert.NotContains(t, html, "/media/https://")
}

func TestPostCardWithoutImageHasNoImgTag(t *testing.T) {
	html := renderPostCard(t, models.Post{
		ID:        1,
		Text:      "plain text",
		Author:    models.User{Username: "leo"},
		CreatedAt: time.Now(),
	})

	assert.NotContains(t, html, "<img")
}
