package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

const userColumns = `id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE open_id = $1`
	return r.getOne(ctx, query, openID)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// Upsert never demotes: an existing admin keeps the role even if user.Role is "user".
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (open_id, name, email, login_method, role, last_signed_in)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (open_id) DO UPDATE
		SET name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    login_method = EXCLUDED.login_method,
		    role = CASE WHEN EXCLUDED.role = 'admin' THEN 'admin' ELSE users.role END,
		    last_signed_in = NOW(),
		    updated_at = NOW()
		RETURNING ` + userColumns
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	_, err := scanUser(r.db.QueryRowContext(ctx, query, user.OpenID, user.Name, user.Email, user.LoginMethod, role), user)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg), &domain.User{})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row rowScanner, user *domain.User) (*domain.User, error) {
	err := row.Scan(
		&user.ID, &user.OpenID, &user.Name, &user.Email, &user.LoginMethod, &user.Role,
		&user.CreatedAt, &user.UpdatedAt, &user.LastSignedIn,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
