package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tsmaulik/movie-demo-test/internal/handlers/middleware"
	"github.com/tsmaulik/movie-demo-test/internal/logger"
	"github.com/tsmaulik/movie-demo-test/internal/models"
	"github.com/tsmaulik/movie-demo-test/internal/repository"
	"github.com/tsmaulik/movie-demo-test/internal/service/movie"
	"github.com/tsmaulik/movie-demo-test/internal/service/objectstore"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	movieService movieService,
	presignService presignService,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	api := http.NewServeMux()

	api.Handle("POST /auth/register", handleRegister(authService, logger))
	api.Handle("POST /auth/login", handleLogin(authService, logger))
	api.Handle("POST /auth/logout", handleLogout(authService))
	api.Handle("POST /auth/refresh", handleTokenRefresh(authService, logger))

	api.Handle("GET /current-user", withAuth(handleCurrentUser()))

	api.Handle("GET /movies", withAuth(handleListMovies(movieService, logger)))
	api.Handle("POST /movies", withAuth(handleCreateMovie(movieService, logger)))
	api.Handle("GET /movies/{id}", withAuth(handleGetMovie(movieService, logger)))
	api.Handle("PUT /movies/{id}", withAuth(handleUpdateMovie(movieService, logger)))
	api.Handle("DELETE /movies/{id}", withAuth(handleDeleteMovie(movieService, logger)))

	api.Handle("POST /s3/presigned-url", withAuth(handlePresignedURL(presignService, logger)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	handler := chain(root,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type authService interface {
	// Register user with email and password
	// Has to return apperrors.ErrUserAlreadyExists if the email is taken
	Register(ctx context.Context, email string, password string) (models.User, error)

	// Login user with email and password
	// Has to return apperrors.ErrUserNotFound for an unknown email and
	// apperrors.ErrInvalidCredentials for the wrong password
	Login(ctx context.Context, email string, password string, remember bool) (models.User, models.Session, error)

	// Reissue access token from a valid refresh token
	// Has to return apperrors.ErrTokenInvalid otherwise
	Refresh(ctx context.Context, refresh string) (models.IssuedToken, error)

	// Get refresh token from request
	GetRefreshString(r *http.Request) (string, error)

	// Session carrier writes
	SetSessionToResponse(w http.ResponseWriter, session models.Session)
	SetAccessToResponse(w http.ResponseWriter, access models.IssuedToken)
	ClearSessionFromResponse(w http.ResponseWriter)

	// Get request and return user if it authenticated or error
	Authenticate(ctx context.Context, r *http.Request) (models.User, error)
}

type movieService interface {
	Create(ctx context.Context, user *models.User, title string, releaseYear int, posterKey string) (models.Movie, error)
	Get(ctx context.Context, user *models.User, movieID uuid.UUID) (models.Movie, error)
	Update(ctx context.Context, user *models.User, movieID uuid.UUID, params repository.UpdateMovieParams) (models.Movie, error)
	SoftDelete(ctx context.Context, user *models.User, movieID uuid.UUID) (models.Movie, error)
	List(ctx context.Context, user *models.User, page int, limit int) (models.MoviePage, error)
}

var _ movieService = (*movie.MovieService)(nil)

type presignService interface {
	PresignedURL(ctx context.Context, key string, op objectstore.Operation, expires time.Duration) (string, error)
}
