package http

import (
	"encoding/json"
	"net/http"

	"github.com/vncsmyrnk/playervote/internal/core/fingerprint"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	PlayerID    int64  `json:"playerId"`
	Fingerprint string `json:"fingerprint"`
}

type voteStatusResponse struct {
	Fingerprint string `json:"fingerprint"`
	HasVoted    bool   `json:"hasVoted"`
}

type fingerprintResponse struct {
	Fingerprint string `json:"fingerprint"`
}

// CheckVoted reports whether a fingerprint already voted. Without the
// fingerprint query parameter the one derived from the request is used.
func (h *VoteHandler) CheckVoted(w http.ResponseWriter, r *http.Request) {
	fp := r.URL.Query().Get("fingerprint")
	if fp == "" {
		fp = fingerprint.FromRequest(r)
	}

	hasVoted, err := h.service.CheckVoted(r.Context(), fp)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, voteStatusResponse{Fingerprint: fp, HasVoted: hasVoted})
}

func (h *VoteHandler) Fingerprint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fingerprintResponse{Fingerprint: fingerprint.FromRequest(r)})
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	input := ports.VoteInput{
		PlayerID:    req.PlayerID,
		Fingerprint: req.Fingerprint,
	}
	if ip, ok := fingerprint.ClientIP(r.Header, r.RemoteAddr); ok {
		input.IPAddress = &ip
	}
	if ua := r.UserAgent(); ua != "" {
		input.UserAgent = &ua
	}

	confirmation, err := h.service.Vote(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmation)
}
