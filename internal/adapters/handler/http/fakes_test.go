package http

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

var (
	adminID  = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	memberID = uuid.MustParse("00000000-0000-0000-0000-0000000000b2")
)

type fakePlayers struct {
	players []domain.Player
	err     error
}

func (f *fakePlayers) ListPlayers(context.Context) ([]domain.Player, error) {
	return f.players, f.err
}

type fakeResults struct {
	results *domain.Results
	err     error
}

func (f *fakeResults) GetResults(context.Context) (*domain.Results, error) {
	return f.results, f.err
}

type fakeVotes struct {
	lastInput   ports.VoteInput
	lastChecked string
	voted       bool
	err         error
}

func (f *fakeVotes) CheckVoted(_ context.Context, fingerprint string) (bool, error) {
	f.lastChecked = fingerprint
	return f.voted, f.err
}

func (f *fakeVotes) Vote(_ context.Context, input ports.VoteInput) (*ports.VoteConfirmation, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return &ports.VoteConfirmation{Success: true, Message: "Vote recorded successfully!"}, nil
}

type fakeAdmin struct {
	calls     []string
	lastInput ports.CreatePlayerInput
	err       error
}

func (f *fakeAdmin) allow(op string, actor domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	f.calls = append(f.calls, op)
	return f.err
}

func (f *fakeAdmin) ResetVotes(_ context.Context, actor domain.Actor) (*ports.MutationResult, error) {
	if err := f.allow("reset", actor); err != nil {
		return nil, err
	}
	return &ports.MutationResult{Success: true, Message: "All votes have been reset."}, nil
}

func (f *fakeAdmin) AddPlayer(_ context.Context, actor domain.Actor, input ports.CreatePlayerInput) (*ports.MutationResult, error) {
	if err := f.allow("add", actor); err != nil {
		return nil, err
	}
	f.lastInput = input
	return &ports.MutationResult{Success: true, Message: "Player added successfully."}, nil
}

func (f *fakeAdmin) DeleteAllPlayers(_ context.Context, actor domain.Actor) (*ports.MutationResult, error) {
	if err := f.allow("delete", actor); err != nil {
		return nil, err
	}
	return &ports.MutationResult{Success: true, Message: "All players have been deleted."}, nil
}

func (f *fakeAdmin) SetPlayerActive(_ context.Context, actor domain.Actor, playerID int64, active bool) (*domain.Player, error) {
	if err := f.allow("set-active", actor); err != nil {
		return nil, err
	}
	return &domain.Player{ID: playerID, Name: "A", Team: "X", IsActive: active}, nil
}

func (f *fakeAdmin) ListPlayerVotes(_ context.Context, actor domain.Actor, playerID int64) ([]domain.Vote, error) {
	if err := f.allow("list-votes", actor); err != nil {
		return nil, err
	}
	return []domain.Vote{{ID: 1, PlayerID: playerID, DeviceFingerprint: "fp"}}, nil
}

func (f *fakeAdmin) SendResultsSummary(_ context.Context, actor domain.Actor) (*domain.Notification, error) {
	if err := f.allow("summary", actor); err != nil {
		return nil, err
	}
	return &domain.Notification{Title: "Voting results summary", Content: "Leader: none | Total: 0 votes | Players: 0"}, nil
}

type fakeAuth struct{}

func (fakeAuth) LoginWithGoogle(_ context.Context, token string) (string, string, error) {
	if token != "valid_token" {
		return "", "", errors.New("invalid google token")
	}
	return "member-token", "refresh-1", nil
}

func (fakeAuth) RefreshAccessToken(_ context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "broken-store" {
		return "", "", errors.New("failed to get refresh token: pq: connection refused")
	}
	if refreshToken != "refresh-1" {
		return "", "", errors.New("refresh token not found")
	}
	return "member-token-2", refreshToken, nil
}

func (fakeAuth) Logout(context.Context, string) error { return nil }

func (fakeAuth) ParseAccessToken(token string) (*domain.Actor, error) {
	switch token {
	case "admin-token":
		return &domain.Actor{UserID: adminID, Role: domain.RoleAdmin}, nil
	case "member-token":
		return &domain.Actor{UserID: memberID, Role: domain.RoleUser}, nil
	}
	return nil, domain.ErrUnauthorized
}

type fakeUsers struct{}

func (fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if id == memberID {
		return &domain.User{ID: id, Name: "Member", Role: domain.RoleUser}, nil
	}
	return nil, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
