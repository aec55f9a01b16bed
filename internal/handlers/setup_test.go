package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Devepooper/yatube/internal/handlers"
	"github.com/Devepooper/yatube/internal/identity"
	"github.com/Devepooper/yatube/internal/middleware"
	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/pagecache"
	"github.com/Devepooper/yatube/internal/render"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/Devepooper/yatube/internal/router"
	"github.com/Devepooper/yatube/internal/session"
	"github.com/Devepooper/yatube/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	echoContentType     = echo.HeaderContentType
	echoFormContentType = echo.MIMEApplicationForm
)

// testApp wires the full handler stack against a mocked database, the
// way cmd/server does against a real one.
type testApp struct {
	e        *echo.Echo
	mock     sqlmock.Sqlmock
	cache    *pagecache.MemoryCache
	sessions *session.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	mock.MatchExpectationsInOrder(false)

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	renderer, err := render.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = router.ErrorHandler

	cache := pagecache.NewMemoryCache()
	sessions := session.NewManager("test-secret")
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	public := e.Group("", middleware.OptionalAuth(sessions, userRepo))
	protected := e.Group("", middleware.RequireAuth(sessions, userRepo))

	authHandler := handlers.NewAuthHandler(identity.NewLocalProvider(userRepo), nil, sessions)
	authHandler.RegisterAuthRoutes(public)

	feedHandler := handlers.NewFeedHandler(postRepo, groupRepo, userRepo, followRepo, cache, 20*time.Second)
	feedHandler.RegisterFeedRoutes(public)
	feedHandler.RegisterProtectedFeedRoutes(protected)

	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, store)
	postHandler.RegisterPostRoutes(public)
	postHandler.RegisterProtectedPostRoutes(protected)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(protected)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(protected)

	return &testApp{e: e, mock: mock, cache: cache, sessions: sessions}
}

// login attaches a valid session cookie for the user.
func (a *testApp) login(t *testing.T, req *http.Request, user *models.User) {
	t.Helper()
	token, err := a.sessions.Issue(user)
	require.NoError(t, err)
	req.AddCookie(session.Cookie(token))
}

func userRows(users ...*models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "username", "password", "firebase_uid", "created_at"})
	for _, u := range users {
		rows.AddRow(u.ID, u.Username, u.Password, u.FirebaseUID, time.Now())
	}
	return rows
}

// expectSessionUserLoad covers the auth middleware resolving the cookie
// to a user row.
func (a *testApp) expectSessionUserLoad(user *models.User) {
	a.mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(user))
}
