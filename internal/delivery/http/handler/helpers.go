package handler

import (
	"net/http"
	"strconv"

	"clinic-backend/internal/delivery/http/middleware"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"

	"github.com/gorilla/mux"
)

// resolveIdentity loads the authenticated caller's profile from the user id
// placed in context by the auth middleware. It writes the error response
// itself, so callers just bail out on ok == false.
func resolveIdentity(w http.ResponseWriter, r *http.Request, auth usecase.AuthUsecase) (*entity.Identity, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return nil, false
	}

	identity, err := auth.ResolveIdentity(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound, usecase.ErrProfileNotFound:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to resolve caller identity")
		}
		return nil, false
	}

	return identity, true
}

// pathInt reads a numeric path variable, writing a 400 on bad input
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || value < 1 {
		response.BadRequest(w, "Invalid "+name)
		return 0, false
	}
	return value, true
}
