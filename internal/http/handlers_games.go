package httpx

import (
	"errors"
	"net/http"

	"github.com/serverside-ltd/portal-api/internal/domain/model"
	"github.com/serverside-ltd/portal-api/internal/service"
)

// GameHandlers provides HTTP handlers for game metadata operations.
type GameHandlers struct {
	Svc *service.GameService
}

// Save handles the game upsert endpoint.
func (h *GameHandlers) Save(w http.ResponseWriter, r *http.Request) {
	var req *model.SaveGameRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	game, err := h.Svc.Save(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "save_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, game)
}

// List returns every stored game. An empty table is a 404, which long-time
// clients rely on to tell "no data yet" apart from an empty page.
func (h *GameHandlers) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}
	if len(games) == 0 {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "no_games",
			Err:     errors.New("no games found"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, games)
}
