package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tsmaulik/movie-demo-test/internal/apperrors"
	"github.com/tsmaulik/movie-demo-test/internal/handlers/render"
	"github.com/tsmaulik/movie-demo-test/internal/handlers/userctx"
	"github.com/tsmaulik/movie-demo-test/internal/logger"
	"github.com/tsmaulik/movie-demo-test/internal/models"
	"github.com/tsmaulik/movie-demo-test/internal/repository"
	"github.com/tsmaulik/movie-demo-test/internal/service/movie"
)

type movieResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear int       `json:"releaseYear"`
	PosterImage string    `json:"posterImage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toMovieResponse(m models.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		PosterImage: m.PosterKey,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func handleCreateMovie(movieService movieService, l logger.Logger) http.Handler {
	type request struct {
		Title       string `json:"title" validate:"required,min=1,max=255"`
		ReleaseYear int    `json:"releaseYear" validate:"required,releaseyear"`
		PosterImage string `json:"posterImage" validate:"required"`
	}
	type response struct {
		Message string        `json:"message"`
		Movie   movieResponse `json:"movie"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		created, err := movieService.Create(r.Context(), &user, data.Title, data.ReleaseYear, data.PosterImage)
		if err != nil {
			l.Error("movie create failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{Message: "New movie successfully added.", Movie: toMovieResponse(created)})
	})
}

func handleListMovies(movieService movieService, l logger.Logger) http.Handler {
	type paginationResponse struct {
		TotalMovies int64 `json:"totalMovies"`
		TotalPages  int64 `json:"totalPages"`
		CurrentPage int   `json:"currentPage"`
		Limit       int   `json:"limit"`
	}
	type response struct {
		Movies     []movieResponse    `json:"movies"`
		Pagination paginationResponse `json:"pagination"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		page, err := queryInt(r, "page", movie.DefaultPage)
		if err != nil || page < 1 {
			render.ServiceError(w, "Page must be a positive integer", http.StatusBadRequest)
			return
		}

		limit, err := queryInt(r, "limit", movie.DefaultLimit)
		if err != nil || limit < 1 || limit > movie.MaxLimit {
			render.ServiceError(w, "Limit must be an integer between 1 and 100", http.StatusBadRequest)
			return
		}

		result, err := movieService.List(r.Context(), &user, page, limit)
		if err != nil {
			l.Error("movie list failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		movies := make([]movieResponse, 0, len(result.Movies))
		for _, m := range result.Movies {
			movies = append(movies, toMovieResponse(m))
		}

		render.JSON(w, response{
			Movies: movies,
			Pagination: paginationResponse{
				TotalMovies: result.TotalMovies,
				TotalPages:  result.TotalPages,
				CurrentPage: result.CurrentPage,
				Limit:       result.Limit,
			},
		})
	})
}

func handleGetMovie(movieService movieService, l logger.Logger) http.Handler {
	type response struct {
		Movie movieResponse `json:"movie"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		movieID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Movie not found", http.StatusNotFound)
			return
		}

		found, err := movieService.Get(r.Context(), &user, movieID)
		if err != nil {
			renderMovieError(w, l, err, "movie get failed")
			return
		}

		render.JSON(w, response{Movie: toMovieResponse(found)})
	})
}

func handleUpdateMovie(movieService movieService, l logger.Logger) http.Handler {
	type request struct {
		Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
		ReleaseYear *int    `json:"releaseYear" validate:"omitempty,releaseyear"`
		PosterImage *string `json:"posterImage" validate:"omitempty,min=1"`
	}
	type response struct {
		Message string        `json:"message"`
		Movie   movieResponse `json:"movie"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		movieID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Movie not found", http.StatusNotFound)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := movieService.Update(r.Context(), &user, movieID, repository.UpdateMovieParams{
			Title:       data.Title,
			ReleaseYear: data.ReleaseYear,
			PosterKey:   data.PosterImage,
		})
		if err != nil {
			renderMovieError(w, l, err, "movie update failed")
			return
		}

		render.JSON(w, response{Message: "Movie updated successfully.", Movie: toMovieResponse(updated)})
	})
}

func handleDeleteMovie(movieService movieService, l logger.Logger) http.Handler {
	type response struct {
		Message string        `json:"message"`
		Movie   movieResponse `json:"movie"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		movieID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Movie not found", http.StatusNotFound)
			return
		}

		deleted, err := movieService.SoftDelete(r.Context(), &user, movieID)
		if err != nil {
			renderMovieError(w, l, err, "movie delete failed")
			return
		}

		render.JSON(w, response{Message: "Movie deleted successfully.", Movie: toMovieResponse(deleted)})
	})
}

// Foreign and missing movies answer identically so ownership is not probeable
func renderMovieError(w http.ResponseWriter, l logger.Logger, err error, logMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrMovieNotFound):
		render.ServiceError(w, "Movie not found", http.StatusNotFound)
	default:
		l.Error(logMsg, "error", err.Error())
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	return strconv.Atoi(raw)
}
