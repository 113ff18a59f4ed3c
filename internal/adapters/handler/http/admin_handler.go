package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

type createPlayerRequest struct {
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	ImageURL *string `json:"imageUrl"`
	Position *string `json:"position"`
	Number   *int    `json:"number"`
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

func (h *AdminHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ResetVotes(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// forbidden takes precedence over a malformed body
		if !actor(r).IsAdmin() {
			writeError(w, r, domain.ErrForbidden)
			return
		}
		badRequest(w, "invalid request body")
		return
	}

	result, err := h.service.AddPlayer(r.Context(), actor(r), ports.CreatePlayerInput{
		Name:     req.Name,
		Team:     req.Team,
		ImageURL: req.ImageURL,
		Position: req.Position,
		Number:   req.Number,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *AdminHandler) DeleteAllPlayers(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DeleteAllPlayers(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) SetPlayerActive(w http.ResponseWriter, r *http.Request) {
	caller := actor(r)
	if !caller.IsAdmin() {
		writeError(w, r, domain.ErrForbidden)
		return
	}

	id, err := playerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		badRequest(w, "active must be a boolean")
		return
	}

	player, err := h.service.SetPlayerActive(r.Context(), caller, id, *req.Active)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *AdminHandler) ListPlayerVotes(w http.ResponseWriter, r *http.Request) {
	caller := actor(r)
	if !caller.IsAdmin() {
		writeError(w, r, domain.ErrForbidden)
		return
	}

	id, err := playerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	votes, err := h.service.ListPlayerVotes(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

func (h *AdminHandler) SendResultsSummary(w http.ResponseWriter, r *http.Request) {
	notification, err := h.service.SendResultsSummary(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notification)
}

func actor(r *http.Request) domain.Actor {
	a, _ := ActorFromContext(r.Context())
	return a
}

func playerID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid player id", domain.ErrInvalidInput)
	}
	return id, nil
}
