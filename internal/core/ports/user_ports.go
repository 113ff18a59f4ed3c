package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/playervote/internal/core/domain"
)

type UserRepository interface {
	GetByOpenID(ctx context.Context, openID string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Upsert inserts the user or refreshes its profile and last sign-in by open id.
	Upsert(ctx context.Context, user *domain.User) error
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
