package httpx

import (
	"errors"
	"net/http"

	"github.com/serverside-ltd/portal-api/internal/data"
	"github.com/serverside-ltd/portal-api/internal/domain/model"
	"github.com/serverside-ltd/portal-api/internal/service"
)

// PlayerHandlers provides HTTP handlers for the player registry.
type PlayerHandlers struct {
	Svc *service.PlayerService
}

// Create registers a new player.
func (h *PlayerHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreatePlayerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	player, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrPlayerExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "player_exists", Err: err})
		case errors.Is(err, service.ErrThumbnailUnavailable), isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, player)
}

// Delete removes players matching the selector in the body and reports how
// many were removed. No match is a 404.
func (h *PlayerHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	var req *model.DeletePlayersRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	count, err := h.Svc.Delete(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		} else {
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		}
		return
	}
	if count == 0 {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "no_players_matched",
			Err:     errors.New("no players matched the selector"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]int64{"deleted": count})
}

// ListByOwner returns all players registered to the given owner.
func (h *PlayerHandlers) ListByOwner(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_owner",
			Err:     errors.New("owner query parameter is required"),
		})
		return
	}

	players, err := h.Svc.ListByOwner(r.Context(), owner)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}
	if players == nil {
		players = []*model.Player{}
	}

	WriteJSON(w, http.StatusOK, players)
}
