package movie

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tsmaulik/movie-demo-test/internal/models"
	"github.com/tsmaulik/movie-demo-test/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 8
	MaxLimit     = 100
)

// Movie service
// Every operation takes the authenticated user explicitly and scopes data
// access by its id: ownership is the only authorization boundary
type MovieService struct {
	movieRepo repository.MovieRepo
}

func NewService(movieRepo repository.MovieRepo) (*MovieService, error) {
	if movieRepo == nil {
		return nil, errors.New("movie repo must not be nil")
	}

	return &MovieService{movieRepo: movieRepo}, nil
}

func (s *MovieService) Create(ctx context.Context, user *models.User, title string, releaseYear int, posterKey string) (models.Movie, error) {
	movie, err := s.movieRepo.CreateMovie(ctx, repository.CreateMovieParams{
		Title:       title,
		ReleaseYear: releaseYear,
		PosterKey:   posterKey,
		UserID:      user.ID,
	})
	if err != nil {
		return movie, fmt.Errorf("error while creating movie. Err: %w", err)
	}

	return movie, nil
}

func (s *MovieService) Get(ctx context.Context, user *models.User, movieID uuid.UUID) (models.Movie, error) {
	return s.movieRepo.GetMovie(ctx, movieID, user.ID)
}

func (s *MovieService) Update(ctx context.Context, user *models.User, movieID uuid.UUID, params repository.UpdateMovieParams) (models.Movie, error) {
	return s.movieRepo.UpdateMovie(ctx, movieID, user.ID, params)
}

func (s *MovieService) SoftDelete(ctx context.Context, user *models.User, movieID uuid.UUID) (models.Movie, error) {
	return s.movieRepo.SoftDeleteMovie(ctx, movieID, user.ID)
}

// List returns one page of the user's movies with pagination metadata.
// Pages past the end are an empty result, not an error.
func (s *MovieService) List(ctx context.Context, user *models.User, page int, limit int) (models.MoviePage, error) {
	if page < 1 || limit < 1 || limit > MaxLimit {
		return models.MoviePage{}, fmt.Errorf("page must be >= 1 and limit in 1..%d", MaxLimit)
	}

	movies, err := s.movieRepo.ListMovies(ctx, repository.ListMoviesParams{
		UserID: user.ID,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return models.MoviePage{}, fmt.Errorf("error while listing movies. Err: %w", err)
	}

	total, err := s.movieRepo.CountMovies(ctx, user.ID)
	if err != nil {
		return models.MoviePage{}, fmt.Errorf("error while counting movies. Err: %w", err)
	}

	return models.MoviePage{
		Movies:      movies,
		TotalMovies: total,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
		Limit:       limit,
	}, nil
}
