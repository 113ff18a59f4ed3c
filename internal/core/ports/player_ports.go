package ports

import (
	"context"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
)

type PlayerRepository interface {
	ListActive(ctx context.Context) ([]domain.Player, error)
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	Create(ctx context.Context, player *domain.Player) (*domain.Player, error)
	SetActive(ctx context.Context, id int64, active bool) (*domain.Player, error)
	DeleteAll(ctx context.Context) error
}

type CreatePlayerInput struct {
	Name     string
	Team     string
	ImageURL *string
	Position *string
	Number   *int
}

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]domain.Player, error)
}
