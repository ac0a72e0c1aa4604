package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsmaulik/movie-demo-test/internal/apperrors"
	"github.com/tsmaulik/movie-demo-test/internal/models"
	"github.com/tsmaulik/movie-demo-test/internal/repository"
)

type MovieRepo struct {
	DB DBTX
}

const createMovie = `-- name: CreateMovie
INSERT INTO movies (title, release_year, poster_key, user_id)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at, title, release_year, poster_key, user_id, is_deleted
`

func (r *MovieRepo) CreateMovie(ctx context.Context, params repository.CreateMovieParams) (models.Movie, error) {
	rows, _ := r.DB.Query(ctx, createMovie, params.Title, params.ReleaseYear, params.PosterKey, params.UserID)
	movie, err := pgx.CollectOneRow(rows, rowToMovie)
	if err != nil {
		return movie, fmt.Errorf("db error: %w", err)
	}

	return movie, nil
}

const getMovie = `-- name: GetMovie
SELECT id, created_at, updated_at, title, release_year, poster_key, user_id, is_deleted
FROM movies
WHERE id = $1 AND user_id = $2 AND NOT is_deleted
`

func (r *MovieRepo) GetMovie(ctx context.Context, movieID uuid.UUID, userID uuid.UUID) (models.Movie, error) {
	rows, _ := r.DB.Query(ctx, getMovie, movieID, userID)
	movie, err := pgx.CollectOneRow(rows, rowToMovie)

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return movie, apperrors.ErrMovieNotFound
	}

	return movie, err
}

// COALESCE keeps the stored value for fields the caller did not send
const updateMovie = `-- name: UpdateMovie
UPDATE movies
SET title        = COALESCE($3, title),
    release_year = COALESCE($4, release_year),
    poster_key   = COALESCE($5, poster_key),
    updated_at   = now()
WHERE id = $1 AND user_id = $2 AND NOT is_deleted
RETURNING id, created_at, updated_at, title, release_year, poster_key, user_id, is_deleted
`

func (r *MovieRepo) UpdateMovie(ctx context.Context, movieID uuid.UUID, userID uuid.UUID, params repository.UpdateMovieParams) (models.Movie, error) {
	rows, _ := r.DB.Query(ctx, updateMovie, movieID, userID, params.Title, params.ReleaseYear, params.PosterKey)
	movie, err := pgx.CollectOneRow(rows, rowToMovie)

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return movie, apperrors.ErrMovieNotFound
	}

	return movie, err
}

const softDeleteMovie = `-- name: SoftDeleteMovie
UPDATE movies
SET is_deleted = TRUE,
    updated_at = now()
WHERE id = $1 AND user_id = $2 AND NOT is_deleted
RETURNING id, created_at, updated_at, title, release_year, poster_key, user_id, is_deleted
`

func (r *MovieRepo) SoftDeleteMovie(ctx context.Context, movieID uuid.UUID, userID uuid.UUID) (models.Movie, error) {
	rows, _ := r.DB.Query(ctx, softDeleteMovie, movieID, userID)
	movie, err := pgx.CollectOneRow(rows, rowToMovie)

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return movie, apperrors.ErrMovieNotFound
	}

	return movie, err
}

const listMovies = `-- name: ListMovies
SELECT id, created_at, updated_at, title, release_year, poster_key, user_id, is_deleted
FROM movies
WHERE user_id = $1 AND NOT is_deleted
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3
`

func (r *MovieRepo) ListMovies(ctx context.Context, params repository.ListMoviesParams) ([]models.Movie, error) {
	rows, _ := r.DB.Query(ctx, listMovies, params.UserID, params.Limit, params.Offset)
	movies, err := pgx.CollectRows(rows, rowToMovie)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return movies, nil
}

const countMovies = `-- name: CountMovies
SELECT count(*) FROM movies
WHERE user_id = $1 AND NOT is_deleted
`

func (r *MovieRepo) CountMovies(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, countMovies, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

func rowToMovie(row pgx.CollectableRow) (models.Movie, error) {
	var m models.Movie
	err := row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.Title, &m.ReleaseYear, &m.PosterKey, &m.UserID, &m.IsDeleted)
	return m, err
}
