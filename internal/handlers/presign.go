package handlers

import (
	"net/http"
	"time"

	"github.com/tsmaulik/movie-demo-test/internal/handlers/render"
	"github.com/tsmaulik/movie-demo-test/internal/logger"
	"github.com/tsmaulik/movie-demo-test/internal/service/objectstore"
)

func handlePresignedURL(presignService presignService, l logger.Logger) http.Handler {
	type request struct {
		ObjectKey string `json:"objectKey" validate:"omitempty,min=1"`
		Operation string `json:"operation" validate:"required,oneof=GET PUT"`
		ExpiresIn int    `json:"expiresIn" validate:"omitempty,min=1"`
	}
	type response struct {
		Message string `json:"message"`
		Key     string `json:"key"`
		URL     string `json:"url"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		op := objectstore.Operation(data.Operation)

		// Uploads may omit the key, then the service mints a fresh one.
		// Downloads always name an existing object.
		key := data.ObjectKey
		if key == "" {
			if op != objectstore.OperationPut {
				render.ServiceError(w, "objectKey is required for GET", http.StatusBadRequest)
				return
			}
			key = objectstore.PosterKey()
		}

		url, err := presignService.PresignedURL(
			r.Context(),
			key,
			op,
			time.Duration(data.ExpiresIn)*time.Second,
		)
		if err != nil {
			l.Error("presign failed", "error", err.Error())
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{Message: "Pre-signed url successfully generated.", Key: key, URL: url})
	})
}
