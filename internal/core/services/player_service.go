package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type playerService struct {
	repo ports.PlayerRepository
}

func NewPlayerService(repo ports.PlayerRepository) ports.PlayerService {
	return &playerService{
		repo: repo,
	}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	players, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		players = []domain.Player{}
	}
	return players, nil
}
