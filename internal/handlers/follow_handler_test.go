package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func expectAuthorLookup(app *testApp) {
	app.mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(userRows(author))
}

func TestFollowCreatesSubscription(t *testing.T) {
	app := newTestApp(t)
	app.expectSessionUserLoad(otherUser)
	expectAuthorLookup(app)

	app.mock.ExpectQuery(`SELECT count\(\*\) FROM "follows"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	app.mock.ExpectBegin()
	app.mock.ExpectQuery(`INSERT INTO "follows"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	app.mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodGet, "/profile/leo/follow/", nil)
	app.login(t, req, otherUser)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/follow/", rec.Header().Get("Location"))
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestFollowTwiceIsNoOp(t *testing.T) {
	app := newTestApp(t)
	app.expectSessionUserLoad(otherUser)
	expectAuthorLookup(app)

	// Already following: no insert happens.
	app.mock.ExpectQuery(`SELECT count\(\*\) FROM "follows"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	req := httptest.NewRequest(http.MethodGet, "/profile/leo/follow/", nil)
	app.login(t, req, otherUser)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/follow/", rec.Header().Get("Location"))
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestSelfFollowIsNoOp(t *testing.T) {
	app := newTestApp(t)
	app.expectSessionUserLoad(author)
	expectAuthorLookup(app)

	req := httptest.NewRequest(http.MethodGet, "/profile/leo/follow/", nil)
	app.login(t, req, author)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	// Redirect still happens, but nothing was written.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/follow/", rec.Header().Get("Location"))
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestUnfollowRemovesSubscription(t *testing.T) {
	app := newTestApp(t)
	app.expectSessionUserLoad(otherUser)
	expectAuthorLookup(app)

	app.mock.ExpectBegin()
	app.mock.ExpectExec(`DELETE FROM "follows" WHERE follower_id = \$1 AND author_id = \$2`).
		WithArgs(otherUser.ID, author.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	app.mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodGet, "/profile/leo/unfollow/", nil)
	app.login(t, req, otherUser)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/follow/", rec.Header().Get("Location"))
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestFollowUnknownAuthorRenders404(t *testing.T) {
	app := newTestApp(t)
	app.expectSessionUserLoad(otherUser)

	app.mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(userRows())

	req := httptest.NewRequest(http.MethodGet, "/profile/nobody/follow/", nil)
	app.login(t, req, otherUser)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, app.mock.ExpectationsWereMet())
}
