package repository

import (
	"context"

	"plannerx/internal/domain/entity"
)

// ContactRepository provides access to stored contacts.
type ContactRepository interface {
	Get(ctx context.Context, id int64) (*entity.Contact, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Contact, error)
	Create(ctx context.Context, contact *entity.Contact) error
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id int64) error
}
