package models

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string
	ReleaseYear int
	PosterKey   string
	UserID      uuid.UUID
	IsDeleted   bool
}

// Pagination metadata returned along every movie listing
type MoviePage struct {
	Movies      []Movie
	TotalMovies int64
	TotalPages  int64
	CurrentPage int
	Limit       int
}
