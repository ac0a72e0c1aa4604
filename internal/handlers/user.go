package handlers

import (
	"net/http"

	"github.com/tsmaulik/movie-demo-test/internal/handlers/render"
	"github.com/tsmaulik/movie-demo-test/internal/handlers/userctx"
)

func handleCurrentUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, toUserResponse(user))
	})
}
