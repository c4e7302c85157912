package repository

import (
	"context"

	"github.com/jhoicas/leads-api/internal/domain/entity"
)

// UserRepository is the persistence port for users.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
