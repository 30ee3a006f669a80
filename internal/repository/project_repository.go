package repository

import (
	"context"

	"plannerx/internal/domain/entity"
)

// ProjectRepository provides access to stored projects.
type ProjectRepository interface {
	Get(ctx context.Context, id int64) (*entity.Project, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Project, error)
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id int64) error
}
