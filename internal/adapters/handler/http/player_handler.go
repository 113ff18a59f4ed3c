package http

import (
	"net/http"

	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type PlayerHandler struct {
	service ports.PlayerService
}

func NewPlayerHandler(service ports.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		service: service,
	}
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.ListPlayers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}
