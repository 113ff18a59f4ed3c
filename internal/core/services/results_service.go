package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type resultsService struct {
	resultsRepo ports.ResultsRepository
	voteRepo    ports.VoteRepository
}

func NewResultsService(resultsRepo ports.ResultsRepository, voteRepo ports.VoteRepository) ports.ResultsService {
	return &resultsService{
		resultsRepo: resultsRepo,
		voteRepo:    voteRepo,
	}
}

func (s *resultsService) GetResults(ctx context.Context) (*domain.Results, error) {
	standings, err := s.resultsRepo.Standings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	total, err := s.voteRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	players := make([]domain.PlayerStanding, 0, len(standings))
	for _, st := range standings {
		st.Percentage = domain.Percentage(st.VoteCount, total)
		players = append(players, st)
	}

	return &domain.Results{
		Players:    players,
		TotalVotes: total,
	}, nil
}
