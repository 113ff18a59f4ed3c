package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

const playerColumns = `id, name, team, image_url, position, number, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type playerRepository struct {
	db *sql.DB
}

func NewPlayerRepository(db *sql.DB) ports.PlayerRepository {
	return &playerRepository{
		db: db,
	}
}

func (r *playerRepository) ListActive(ctx context.Context) ([]domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE is_active = TRUE ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return players, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	p, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	query := `
		INSERT INTO players (name, team, image_url, position, number, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + playerColumns
	created, err := scanPlayer(r.db.QueryRowContext(ctx, query,
		player.Name, player.Team, player.ImageURL, player.Position, player.Number, player.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	return created, nil
}

func (r *playerRepository) SetActive(ctx context.Context, id int64, active bool) (*domain.Player, error) {
	query := `
		UPDATE players SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + playerColumns
	p, err := scanPlayer(r.db.QueryRowContext(ctx, query, id, active))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return p, nil
}

func (r *playerRepository) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_milestones`); err != nil {
		return fmt.Errorf("failed to delete milestones: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanPlayer(row rowScanner) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.Name, &p.Team, &p.ImageURL, &p.Position, &p.Number, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return &p, nil
}
