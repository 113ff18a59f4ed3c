package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Players       *PlayerHandler
	Results       *ResultsHandler
	Votes         *VoteHandler
	Admin         *AdminHandler
	Auth          *AuthHandler
	Users         *UserHandler
	Health        *HealthHandler
	Authenticator *Authenticator
	// VoteLimiter wraps vote casting; nil leaves it unthrottled.
	VoteLimiter    func(http.Handler) http.Handler
	AllowedOrigins []string
}

func NewHandler(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	voteLimiter := h.VoteLimiter
	if voteLimiter == nil {
		voteLimiter = func(next http.Handler) http.Handler { return next }
	}

	r.Get("/healthz", h.Health.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/google/callback", h.Auth.GoogleCallback)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", h.Players.ListPlayers)
		r.Get("/results", h.Results.GetResults)

		r.Route("/votes", func(r chi.Router) {
			r.Get("/status", h.Votes.CheckVoted)
			r.Get("/fingerprint", h.Votes.Fingerprint)
			r.With(voteLimiter).Post("/", h.Votes.CastVote)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticator.RequireSession)

			r.Get("/me", h.Users.GetMe)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/votes/reset", h.Admin.ResetVotes)
				r.Post("/players", h.Admin.AddPlayer)
				r.Delete("/players", h.Admin.DeleteAllPlayers)
				r.Patch("/players/{id}", h.Admin.SetPlayerActive)
				r.Get("/players/{id}/votes", h.Admin.ListPlayerVotes)
				r.Post("/results/summary", h.Admin.SendResultsSummary)
			})
		})
	})

	return r
}
