package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tsmaulik/movie-demo-test/internal/apperrors"
	"github.com/tsmaulik/movie-demo-test/internal/logger"
	"github.com/tsmaulik/movie-demo-test/internal/models"
	"github.com/tsmaulik/movie-demo-test/internal/repository"
	"github.com/tsmaulik/movie-demo-test/internal/service/auth"
	"github.com/tsmaulik/movie-demo-test/internal/service/movie"
	"github.com/tsmaulik/movie-demo-test/internal/service/objectstore"
	"github.com/tsmaulik/movie-demo-test/internal/token"
)

// In-memory user repo, enough for the handler contract
type fakeUserRepo struct {
	users map[uuid.UUID]models.User
}

func (r *fakeUserRepo) CreateUser(_ context.Context, email string, hashedPassword string) (models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, apperrors.ErrUserAlreadyExists
		}
	}

	user := models.User{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		Email:          email,
		HashedPassword: hashedPassword,
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, userID uuid.UUID) (models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrUserNotFound
}

// In-memory movie repo with the same owner scoping the production repo has
type fakeMovieRepo struct {
	movies map[uuid.UUID]models.Movie
}

func (r *fakeMovieRepo) CreateMovie(_ context.Context, params repository.CreateMovieParams) (models.Movie, error) {
	m := models.Movie{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Title:       params.Title,
		ReleaseYear: params.ReleaseYear,
		PosterKey:   params.PosterKey,
		UserID:      params.UserID,
	}
	r.movies[m.ID] = m
	return m, nil
}

func (r *fakeMovieRepo) GetMovie(_ context.Context, movieID uuid.UUID, userID uuid.UUID) (models.Movie, error) {
	m, ok := r.movies[movieID]
	if !ok || m.UserID != userID || m.IsDeleted {
		return models.Movie{}, apperrors.ErrMovieNotFound
	}
	return m, nil
}

func (r *fakeMovieRepo) UpdateMovie(ctx context.Context, movieID uuid.UUID, userID uuid.UUID, params repository.UpdateMovieParams) (models.Movie, error) {
	m, err := r.GetMovie(ctx, movieID, userID)
	if err != nil {
		return models.Movie{}, err
	}

	if params.Title != nil {
		m.Title = *params.Title
	}
	if params.ReleaseYear != nil {
		m.ReleaseYear = *params.ReleaseYear
	}
	if params.PosterKey != nil {
		m.PosterKey = *params.PosterKey
	}
	m.UpdatedAt = time.Now()

	r.movies[m.ID] = m
	return m, nil
}

func (r *fakeMovieRepo) SoftDeleteMovie(ctx context.Context, movieID uuid.UUID, userID uuid.UUID) (models.Movie, error) {
	m, err := r.GetMovie(ctx, movieID, userID)
	if err != nil {
		return models.Movie{}, err
	}

	m.IsDeleted = true
	r.movies[m.ID] = m
	return m, nil
}

func (r *fakeMovieRepo) ListMovies(_ context.Context, params repository.ListMoviesParams) ([]models.Movie, error) {
	owned := make([]models.Movie, 0)
	for _, m := range r.movies {
		if m.UserID == params.UserID && !m.IsDeleted {
			owned = append(owned, m)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })

	if params.Offset >= len(owned) {
		return []models.Movie{}, nil
	}
	end := params.Offset + params.Limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[params.Offset:end], nil
}

func (r *fakeMovieRepo) CountMovies(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, m := range r.movies {
		if m.UserID == userID && !m.IsDeleted {
			count++
		}
	}
	return count, nil
}

// Allow to use a function as presign service
type presignFunc func(ctx context.Context, key string, op objectstore.Operation, expires time.Duration) (string, error)

func (f presignFunc) PresignedURL(ctx context.Context, key string, op objectstore.Operation, expires time.Duration) (string, error) {
	return f(ctx, key, op, expires)
}

type testServer struct {
	URL     string
	Auth    *auth.AuthService
	Presign *presignFunc
}

// Run the full router over in-memory repos
// Production auth and movie services are used, presign is a stub the test may swap
func newTestServer(t *testing.T) testServer {
	t.Helper()

	tokens, err := token.NewManager(token.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
	})
	require.NoError(t, err, "token manager should be created without errors")

	authService, err := auth.NewService(auth.Config{}, tokens, &fakeUserRepo{users: map[uuid.UUID]models.User{}})
	require.NoError(t, err, "auth service starting error")

	movieService, err := movie.NewService(&fakeMovieRepo{movies: map[uuid.UUID]models.Movie{}})
	require.NoError(t, err, "movie service starting error")

	presign := presignFunc(func(ctx context.Context, key string, op objectstore.Operation, expires time.Duration) (string, error) {
		return "https://s3.example.com/" + key + "?signed", nil
	})

	handler := NewRouter(authService, movieService, &presign, logger.NewNoOpLogger())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return testServer{URL: srv.URL, Auth: authService, Presign: &presign}
}

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not found in response", name)
	return nil
}
