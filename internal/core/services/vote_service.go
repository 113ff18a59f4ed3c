package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

const (
	voteRecordedMessage  = "Vote recorded successfully!"
	defaultNotifyTimeout = 5 * time.Second
)

type voteService struct {
	playerRepo    ports.PlayerRepository
	voteRepo      ports.VoteRepository
	notifier      ports.Notifier
	notifyTimeout time.Duration
}

func NewVoteService(playerRepo ports.PlayerRepository, voteRepo ports.VoteRepository, notifier ports.Notifier) ports.VoteService {
	return &voteService{
		playerRepo:    playerRepo,
		voteRepo:      voteRepo,
		notifier:      notifier,
		notifyTimeout: defaultNotifyTimeout,
	}
}

func (s *voteService) CheckVoted(ctx context.Context, fingerprint string) (bool, error) {
	if strings.TrimSpace(fingerprint) == "" {
		return false, fmt.Errorf("%w: fingerprint is required", domain.ErrInvalidInput)
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, fingerprint)
	if err != nil {
		return false, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	return hasVoted, nil
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*ports.VoteConfirmation, error) {
	if input.PlayerID <= 0 {
		return nil, fmt.Errorf("%w: playerId must be a positive integer", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Fingerprint) == "" {
		return nil, fmt.Errorf("%w: fingerprint is required", domain.ErrInvalidInput)
	}
	if len(input.Fingerprint) > domain.MaxFingerprintLength {
		return nil, fmt.Errorf("%w: fingerprint must be at most %d characters", domain.ErrInvalidInput, domain.MaxFingerprintLength)
	}
	// the address comes from client headers; an oversized one is not stored
	if input.IPAddress != nil && len(*input.IPAddress) > domain.MaxIPAddressLength {
		input.IPAddress = nil
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, input.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	if hasVoted {
		return nil, domain.ErrAlreadyVoted
	}

	player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil || !player.IsActive {
		return nil, domain.ErrPlayerNotFound
	}

	receipt, err := s.voteRepo.RecordVote(ctx, &domain.Vote{
		PlayerID:          input.PlayerID,
		DeviceFingerprint: input.Fingerprint,
		IPAddress:         input.IPAddress,
		UserAgent:         input.UserAgent,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyVoted) || errors.Is(err, domain.ErrPlayerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}
	if receipt == nil {
		return nil, fmt.Errorf("vote was not recorded: %w", domain.ErrStorageUnavailable)
	}

	slog.Info("vote recorded", "player_id", player.ID, "player_votes", receipt.PlayerVotes)

	s.notify(ctx, domain.Notification{
		Title:   "New vote recorded",
		Content: fmt.Sprintf("%s (%s) received a vote. Total: %d votes", player.Name, player.Team, receipt.PlayerVotes),
	})
	for _, milestone := range receipt.Milestones {
		s.notify(ctx, domain.Notification{
			Title:   fmt.Sprintf("Threshold of %d votes reached!", milestone),
			Content: fmt.Sprintf("%s reached %d votes!", player.Name, receipt.PlayerVotes),
		})
	}

	return &ports.VoteConfirmation{
		Success: true,
		Message: voteRecordedMessage,
	}, nil
}

// notify never fails the caller; delivery problems are only logged.
func (s *voteService) notify(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	ok, err := s.notifier.Notify(ctx, n)
	if err != nil {
		slog.Warn("failed to send notification", "title", n.Title, "error", err)
		return
	}
	if !ok {
		slog.Warn("notification was not accepted", "title", n.Title)
	}
}
