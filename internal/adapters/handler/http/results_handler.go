package http

import (
	"net/http"

	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type ResultsHandler struct {
	service ports.ResultsService
}

func NewResultsHandler(service ports.ResultsService) *ResultsHandler {
	return &ResultsHandler{
		service: service,
	}
}

func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.GetResults(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
