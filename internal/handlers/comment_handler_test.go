package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAddCommentPersistsAndRedirects(t *testing.T) {
	app := newTestApp(t)
	app.expectSessionUserLoad(otherUser)

	app.mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WillReturnRows(singlePostRows(author.ID))
	app.mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(author))

	app.mock.ExpectBegin()
	app.mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	app.mock.ExpectCommit()

	form := url.Values{"text": {"a new comment"}}
	req := httptest.NewRequest(http.MethodPost, "/posts/1/comment/", strings.NewReader(form.Encode()))
	req.Header.Set(echoContentType, echoFormContentType)
	app.login(t, req, otherUser)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/1/", rec.Header().Get("Location"))
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestAnonymousCommentRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"text": {"a new comment"}}
	req := httptest.NewRequest(http.MethodPost, "/posts/1/comment/", strings.NewReader(form.Encode()))
	req.Header.Set(echoContentType, echoFormContentType)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	// No comment row is written for anonymous submissions.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next=/posts/1/comment/", rec.Header().Get("Location"))
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestEmptyCommentWritesNothing(t *testing.T) {
	app := newTestApp(t)
	app.expectSessionUserLoad(otherUser)

	app.mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WillReturnRows(singlePostRows(author.ID))
	app.mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(author))

	form := url.Values{"text": {"   "}}
	req := httptest.NewRequest(http.MethodPost, "/posts/1/comment/", strings.NewReader(form.Encode()))
	req.Header.Set(echoContentType, echoFormContentType)
	app.login(t, req, otherUser)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/1/", rec.Header().Get("Location"))
	assert.NoError(t, app.mock.ExpectationsWereMet())
}
