package httpx

import (
	"errors"
	"net/http"

	"github.com/serverside-ltd/portal-api/internal/ports"
	"github.com/serverside-ltd/portal-api/internal/service"
)

// UserHandlers provides HTTP handlers for user profile operations.
type UserHandlers struct {
	Svc *service.UserService
}

// Get returns the public profile subset for a user id.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_user_id",
			Err:     errors.New("userId query parameter is required"),
		})
		return
	}

	profile, err := h.Svc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

// UpdateName sets the roblox username on an existing profile.
func (h *UserHandlers) UpdateName(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	newName := r.URL.Query().Get("newname")
	if userID == "" || newName == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_params",
			Err:     errors.New("userId and newname query parameters are required"),
		})
		return
	}

	user, err := h.Svc.UpdateRobloxUsername(r.Context(), userID, newName)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, user)
}
