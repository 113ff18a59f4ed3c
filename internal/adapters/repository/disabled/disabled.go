// Package disabled provides storage adapters for STORAGE_MODE=disabled. Reads
// return empty values and writes are dropped; operations that must produce a
// result return nil so the service layer can report the storage as unavailable.
package disabled

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type Players struct{}

func NewPlayerRepository() ports.PlayerRepository { return Players{} }

func (Players) ListActive(context.Context) ([]domain.Player, error) { return []domain.Player{}, nil }

func (Players) GetByID(context.Context, int64) (*domain.Player, error) { return nil, nil }

func (Players) Create(context.Context, *domain.Player) (*domain.Player, error) { return nil, nil }

func (Players) SetActive(context.Context, int64, bool) (*domain.Player, error) { return nil, nil }

func (Players) DeleteAll(context.Context) error { return nil }

type Votes struct{}

func NewVoteRepository() ports.VoteRepository { return Votes{} }

func (Votes) HasVoted(context.Context, string) (bool, error) { return false, nil }

func (Votes) RecordVote(context.Context, *domain.Vote) (*domain.VoteReceipt, error) {
	return nil, nil
}

func (Votes) ListByPlayer(context.Context, int64) ([]domain.Vote, error) { return []domain.Vote{}, nil }

func (Votes) CountByPlayer(context.Context, int64) (int64, error) { return 0, nil }

func (Votes) CountAll(context.Context) (int64, error) { return 0, nil }

func (Votes) Reset(context.Context) error { return nil }

type Results struct{}

func NewResultsRepository() ports.ResultsRepository { return Results{} }

func (Results) Standings(context.Context) ([]domain.PlayerStanding, error) {
	return []domain.PlayerStanding{}, nil
}

type Users struct{}

func NewUserRepository() ports.UserRepository { return Users{} }

func (Users) GetByOpenID(context.Context, string) (*domain.User, error) { return nil, nil }

func (Users) GetByID(context.Context, uuid.UUID) (*domain.User, error) { return nil, nil }

func (Users) Upsert(context.Context, *domain.User) error { return nil }

type Tokens struct{}

func NewAuthRepository() ports.AuthRepository { return Tokens{} }

func (Tokens) StoreRefreshToken(context.Context, *domain.RefreshToken) error { return nil }

func (Tokens) GetRefreshTokenByHash(context.Context, string) (*domain.RefreshToken, error) {
	return nil, nil
}

func (Tokens) RevokeRefreshToken(context.Context, string) error { return nil }
