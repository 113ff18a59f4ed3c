package ports

import (
	"context"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
)

type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AdminService interface {
	ResetVotes(ctx context.Context, actor domain.Actor) (*MutationResult, error)
	AddPlayer(ctx context.Context, actor domain.Actor, input CreatePlayerInput) (*MutationResult, error)
	DeleteAllPlayers(ctx context.Context, actor domain.Actor) (*MutationResult, error)
	SetPlayerActive(ctx context.Context, actor domain.Actor, playerID int64, active bool) (*domain.Player, error)
	ListPlayerVotes(ctx context.Context, actor domain.Actor, playerID int64) ([]domain.Vote, error)
	SendResultsSummary(ctx context.Context, actor domain.Actor) (*domain.Notification, error)
}
