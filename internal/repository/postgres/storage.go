package postgres

import (
	"github.com/tsmaulik/movie-demo-test/internal/repository"
)

type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) *Storage {
	return &Storage{db: db}
}

func (s *Storage) User() repository.UserRepo {
	return &UserRepo{DB: s.db}
}

func (s *Storage) Movie() repository.MovieRepo {
	return &MovieRepo{DB: s.db}
}
