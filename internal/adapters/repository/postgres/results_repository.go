package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type resultsRepository struct {
	db *sql.DB
}

func NewResultsRepository(db *sql.DB) ports.ResultsRepository {
	return &resultsRepository{
		db: db,
	}
}

func (r *resultsRepository) Standings(ctx context.Context) ([]domain.PlayerStanding, error) {
	query := `
		SELECT p.id, p.name, p.team, p.image_url, p.position, p.number, p.is_active,
		       p.created_at, p.updated_at, COUNT(v.id) AS vote_count
		FROM players p
		LEFT JOIN votes v ON v.player_id = p.id
		WHERE p.is_active = TRUE
		GROUP BY p.id
		ORDER BY vote_count DESC, p.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}
	defer rows.Close()

	standings := []domain.PlayerStanding{}
	for rows.Next() {
		var s domain.PlayerStanding
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Team, &s.ImageURL, &s.Position, &s.Number, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt, &s.VoteCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standings: %w", err)
	}
	return standings, nil
}
