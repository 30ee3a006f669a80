package repository

import (
	"context"

	"plannerx/internal/domain/entity"
)

// UserRepository provides access to stored user accounts.
type UserRepository interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetByUID(ctx context.Context, uid string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error

	// ListDigestEnabled returns every user with digest delivery turned
	// on, in a stable order. The daily digest job iterates this set.
	ListDigestEnabled(ctx context.Context) ([]*entity.User, error)
}
