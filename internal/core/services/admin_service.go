package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type adminService struct {
	playerRepo ports.PlayerRepository
	voteRepo   ports.VoteRepository
	summary    ports.SummaryService
}

func NewAdminService(playerRepo ports.PlayerRepository, voteRepo ports.VoteRepository, summary ports.SummaryService) ports.AdminService {
	return &adminService{
		playerRepo: playerRepo,
		voteRepo:   voteRepo,
		summary:    summary,
	}
}

func (s *adminService) ResetVotes(ctx context.Context, actor domain.Actor) (*ports.MutationResult, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if err := s.voteRepo.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset votes: %w", err)
	}

	slog.Info("votes reset", "user_id", actor.UserID)
	return &ports.MutationResult{Success: true, Message: "All votes have been reset."}, nil
}

func (s *adminService) AddPlayer(ctx context.Context, actor domain.Actor, input ports.CreatePlayerInput) (*ports.MutationResult, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(input.Name)
	team := strings.TrimSpace(input.Team)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if team == "" {
		return nil, fmt.Errorf("%w: team is required", domain.ErrInvalidInput)
	}

	created, err := s.playerRepo.Create(ctx, &domain.Player{
		Name:     name,
		Team:     team,
		ImageURL: input.ImageURL,
		Position: input.Position,
		Number:   input.Number,
		IsActive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("player was not created: %w", domain.ErrStorageUnavailable)
	}

	slog.Info("player added", "player_id", created.ID, "user_id", actor.UserID)
	return &ports.MutationResult{Success: true, Message: "Player added successfully."}, nil
}

func (s *adminService) DeleteAllPlayers(ctx context.Context, actor domain.Actor) (*ports.MutationResult, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if err := s.playerRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete players: %w", err)
	}

	slog.Info("players deleted", "user_id", actor.UserID)
	return &ports.MutationResult{Success: true, Message: "All players have been deleted."}, nil
}

func (s *adminService) SetPlayerActive(ctx context.Context, actor domain.Actor, playerID int64, active bool) (*domain.Player, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id must be a positive integer", domain.ErrInvalidInput)
	}

	player, err := s.playerRepo.SetActive(ctx, playerID, active)
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	if player == nil {
		return nil, domain.ErrPlayerNotFound
	}
	return player, nil
}

func (s *adminService) ListPlayerVotes(ctx context.Context, actor domain.Actor, playerID int64) ([]domain.Vote, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id must be a positive integer", domain.ErrInvalidInput)
	}

	votes, err := s.voteRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	if votes == nil {
		votes = []domain.Vote{}
	}
	return votes, nil
}

func (s *adminService) SendResultsSummary(ctx context.Context, actor domain.Actor) (*domain.Notification, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.summary.SendResultsSummary(ctx)
}
