package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tsmaulik/movie-demo-test/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the email exists already (case-insensitive) has to return
	// apperrors.ErrUserAlreadyExists and write nothing
	CreateUser(ctx context.Context, email string, hashedPassword string) (models.User, error)

	// Get user by it's id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type CreateMovieParams struct {
	Title       string
	ReleaseYear int
	PosterKey   string
	UserID      uuid.UUID
}

// Fields to change on update; nil fields keep their current value
type UpdateMovieParams struct {
	Title       *string
	ReleaseYear *int
	PosterKey   *string
}

type ListMoviesParams struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// Movie repository interface
// Every lookup, update and delete is scoped by the owner id and skips
// soft-deleted rows; a foreign or deleted movie is apperrors.ErrMovieNotFound
type MovieRepo interface {
	CreateMovie(ctx context.Context, params CreateMovieParams) (models.Movie, error)

	GetMovie(ctx context.Context, movieID uuid.UUID, userID uuid.UUID) (models.Movie, error)

	UpdateMovie(ctx context.Context, movieID uuid.UUID, userID uuid.UUID, params UpdateMovieParams) (models.Movie, error)

	// Set is_deleted flag; the row itself stays in storage
	SoftDeleteMovie(ctx context.Context, movieID uuid.UUID, userID uuid.UUID) (models.Movie, error)

	ListMovies(ctx context.Context, params ListMoviesParams) ([]models.Movie, error)
	CountMovies(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Storage aggregates every repository over one shared db handle
type Storage interface {
	User() UserRepo
	Movie() MovieRepo
}
