package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/tsmaulik/movie-demo-test/internal/apperrors"
	"github.com/tsmaulik/movie-demo-test/internal/handlers/render"
	"github.com/tsmaulik/movie-demo-test/internal/handlers/userctx"
	"github.com/tsmaulik/movie-demo-test/internal/models"
)

type authService interface {
	Authenticate(ctx context.Context, r *http.Request) (models.User, error)
}

// AuthMiddleware rejects the request before any business logic runs unless
// the session carries a valid access token for an existing user
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := as.Authenticate(r.Context(), r)
			if err != nil {
				// Only token failures mean the caller is unauthenticated,
				// anything else (say a dead database) is the server's fault
				if errors.Is(err, apperrors.ErrTokenInvalid) {
					render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
