package ports

import (
	"context"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
)

type VoteRepository interface {
	HasVoted(ctx context.Context, fingerprint string) (bool, error)
	// RecordVote stores the vote and claims the fingerprint in one transaction.
	// It returns a nil receipt when storage is disabled.
	RecordVote(ctx context.Context, vote *domain.Vote) (*domain.VoteReceipt, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]domain.Vote, error)
	CountByPlayer(ctx context.Context, playerID int64) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	// Reset deletes every vote, fingerprint record and milestone mark.
	Reset(ctx context.Context) error
}

type VoteInput struct {
	PlayerID    int64
	Fingerprint string
	IPAddress   *string
	UserAgent   *string
}

type VoteConfirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VoteService interface {
	CheckVoted(ctx context.Context, fingerprint string) (bool, error)
	Vote(ctx context.Context, input VoteInput) (*VoteConfirmation, error)
}
