package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

// memoryStore backs the player, vote and results ports for service tests.
type memoryStore struct {
	mu           sync.Mutex
	nextPlayerID int64
	nextVoteID   int64
	players      map[int64]*domain.Player
	votes        []domain.Vote
	fingerprints map[string]bool
	milestones   map[int64]int
	failWith     error
	nilReceipt   bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		players:      map[int64]*domain.Player{},
		fingerprints: map[string]bool{},
		milestones:   map[int64]int{},
	}
}

func (m *memoryStore) addPlayer(name, team string, active bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPlayerID++
	m.players[m.nextPlayerID] = &domain.Player{ID: m.nextPlayerID, Name: name, Team: team, IsActive: active}
	return m.nextPlayerID
}

func (m *memoryStore) ListActive(ctx context.Context) ([]domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Player
	for _, p := range m.players {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, m.failWith
}

func (m *memoryStore) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memoryStore) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	id := m.addPlayer(player.Name, player.Team, player.IsActive)
	return m.GetByID(ctx, id)
}

func (m *memoryStore) SetActive(ctx context.Context, id int64, active bool) (*domain.Player, error) {
	m.mu.Lock()
	p, ok := m.players[id]
	if ok {
		p.IsActive = active
	}
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return m.GetByID(ctx, id)
}

func (m *memoryStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.players = map[int64]*domain.Player{}
	return nil
}

func (m *memoryStore) HasVoted(ctx context.Context, fingerprint string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fingerprints[fingerprint], m.failWith
}

func (m *memoryStore) RecordVote(ctx context.Context, vote *domain.Vote) (*domain.VoteReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.nilReceipt {
		return nil, nil
	}
	if m.fingerprints[vote.DeviceFingerprint] {
		return nil, domain.ErrAlreadyVoted
	}
	m.nextVoteID++
	v := *vote
	v.ID = m.nextVoteID
	v.CreatedAt = time.Now()
	m.votes = append(m.votes, v)
	m.fingerprints[vote.DeviceFingerprint] = true

	count := m.countLocked(vote.PlayerID)
	crossed := domain.CrossedMilestones(m.milestones[vote.PlayerID], count)
	if len(crossed) > 0 {
		m.milestones[vote.PlayerID] = crossed[len(crossed)-1]
	}
	return &domain.VoteReceipt{Vote: v, PlayerVotes: count, Milestones: crossed}, nil
}

func (m *memoryStore) countLocked(playerID int64) int64 {
	var n int64
	for _, v := range m.votes {
		if v.PlayerID == playerID {
			n++
		}
	}
	return n
}

func (m *memoryStore) ListByPlayer(ctx context.Context, playerID int64) ([]domain.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Vote
	for _, v := range m.votes {
		if v.PlayerID == playerID {
			out = append(out, v)
		}
	}
	return out, m.failWith
}

func (m *memoryStore) CountByPlayer(ctx context.Context, playerID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countLocked(playerID), m.failWith
}

func (m *memoryStore) CountAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.votes)), m.failWith
}

func (m *memoryStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.votes = nil
	m.fingerprints = map[string]bool{}
	m.milestones = map[int64]int{}
	return nil
}

func (m *memoryStore) Standings(ctx context.Context) ([]domain.PlayerStanding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PlayerStanding
	for _, p := range m.players {
		if p.IsActive {
			out = append(out, domain.PlayerStanding{Player: *p, VoteCount: m.countLocked(p.ID)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VoteCount != out[j].VoteCount {
			return out[i].VoteCount > out[j].VoteCount
		}
		return out[i].ID < out[j].ID
	})
	return out, m.failWith
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, msg domain.Notification) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return false, n.err
	}
	n.sent = append(n.sent, msg)
	return true, nil
}

func (n *recordingNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, m := range n.sent {
		out = append(out, m.Title)
	}
	return out
}

type memoryUsers struct {
	byOpenID map[string]*domain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byOpenID: map[string]*domain.User{}}
}

func (u *memoryUsers) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	return u.byOpenID[openID], nil
}

func (u *memoryUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range u.byOpenID {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (u *memoryUsers) Upsert(ctx context.Context, user *domain.User) error {
	existing, ok := u.byOpenID[user.OpenID]
	if !ok {
		user.ID = uuid.New()
		stored := *user
		u.byOpenID[user.OpenID] = &stored
		return nil
	}
	existing.Name = user.Name
	existing.Email = user.Email
	if user.Role == domain.RoleAdmin {
		existing.Role = domain.RoleAdmin
	}
	*user = *existing
	return nil
}

type memoryTokens struct {
	byHash map[string]*domain.RefreshToken
}

func (m *memoryTokens) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	token.ID = uuid.New()
	m.byHash[token.TokenHash] = token
	return nil
}

func (m *memoryTokens) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.byHash[tokenHash], nil
}

func (m *memoryTokens) RevokeRefreshToken(ctx context.Context, id string) error {
	for _, t := range m.byHash {
		if t.ID.String() == id {
			t.Revoked = true
		}
	}
	return nil
}

type stubVerifier struct {
	payload *ports.TokenPayload
}

func (v *stubVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	if token != "valid_token" {
		return nil, errors.New("invalid token")
	}
	return v.payload, nil
}

var errBoom = errors.New("boom")
