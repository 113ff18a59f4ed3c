package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) HasVoted(ctx context.Context, fingerprint string) (bool, error) {
	query := `SELECT has_voted FROM device_fingerprints WHERE fingerprint = $1`
	var hasVoted bool
	err := r.db.QueryRowContext(ctx, query, fingerprint).Scan(&hasVoted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	return hasVoted, nil
}

// RecordVote runs in a single transaction. The player row is locked so votes for
// the same player are serialized, and the fingerprint row is claimed with a
// conditional upsert so a second vote from the same device fails closed.
func (r *voteRepository) RecordVote(ctx context.Context, vote *domain.Vote) (*domain.VoteReceipt, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var active bool
	err = tx.QueryRowContext(ctx, `SELECT is_active FROM players WHERE id = $1 FOR UPDATE`, vote.PlayerID).Scan(&active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to lock player: %w", err)
	}
	if !active {
		return nil, domain.ErrPlayerNotFound
	}

	claimFingerprint := `
		INSERT INTO device_fingerprints (fingerprint, has_voted, last_vote_at)
		VALUES ($1, TRUE, NOW())
		ON CONFLICT (fingerprint) DO UPDATE
		SET has_voted = TRUE, last_vote_at = NOW(), updated_at = NOW()
		WHERE device_fingerprints.has_voted = FALSE
		RETURNING id
	`
	var fingerprintID int64
	err = tx.QueryRowContext(ctx, claimFingerprint, vote.DeviceFingerprint).Scan(&fingerprintID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return nil, domain.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to claim fingerprint: %w", err)
	}

	insertVote := `
		INSERT INTO votes (player_id, device_fingerprint, ip_address, user_agent)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	saved := *vote
	err = tx.QueryRowContext(ctx, insertVote, vote.PlayerID, vote.DeviceFingerprint, vote.IPAddress, vote.UserAgent).
		Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	var count int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE player_id = $1`, vote.PlayerID).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count player votes: %w", err)
	}

	milestones, err := r.advanceMilestone(ctx, tx, vote.PlayerID, count)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.VoteReceipt{
		Vote:        saved,
		PlayerVotes: count,
		Milestones:  milestones,
	}, nil
}

// advanceMilestone records the highest milestone reached by count and returns
// the ones that had not been notified yet.
func (r *voteRepository) advanceMilestone(ctx context.Context, tx *sql.Tx, playerID int64, count int64) ([]int, error) {
	var notified int
	err := tx.QueryRowContext(ctx, `SELECT highest_notified FROM player_milestones WHERE player_id = $1`, playerID).Scan(&notified)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}

	crossed := domain.CrossedMilestones(notified, count)
	if len(crossed) == 0 {
		return nil, nil
	}

	upsert := `
		INSERT INTO player_milestones (player_id, highest_notified)
		VALUES ($1, $2)
		ON CONFLICT (player_id) DO UPDATE
		SET highest_notified = EXCLUDED.highest_notified, updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, upsert, playerID, crossed[len(crossed)-1]); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}
	return crossed, nil
}

func (r *voteRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.Vote, error) {
	query := `
		SELECT id, player_id, device_fingerprint, ip_address, user_agent, created_at
		FROM votes
		WHERE player_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.PlayerID, &v.DeviceFingerprint, &v.IPAddress, &v.UserAgent, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) CountByPlayer(ctx context.Context, playerID int64) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE player_id = $1`, playerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count player votes: %w", err)
	}
	return count, nil
}

func (r *voteRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func (r *voteRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"votes", "device_fingerprints", "player_milestones"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
