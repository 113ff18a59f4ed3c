package ports

import (
	"context"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
)

type ResultsRepository interface {
	// Standings lists active players with their vote counts, most voted first.
	Standings(ctx context.Context) ([]domain.PlayerStanding, error)
}

type ResultsService interface {
	GetResults(ctx context.Context) (*domain.Results, error)
}

type SummaryService interface {
	SendResultsSummary(ctx context.Context) (*domain.Notification, error)
}
