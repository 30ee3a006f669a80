// Package repository defines the persistence interfaces the use cases
// depend on. Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"time"

	"plannerx/internal/domain/entity"
)

// TaskRepository provides access to stored tasks.
type TaskRepository interface {
	Get(ctx context.Context, id int64) (*entity.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Task, error)
	Create(ctx context.Context, task *entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id int64) error

	// ListDueBetween returns the user's unfinished tasks whose due time
	// falls in the half-open window [from, to), ordered by priority
	// descending (HIGH first) then due time ascending.
	ListDueBetween(ctx context.Context, userID int64, from, to time.Time) ([]*entity.Task, error)

	// ListOverdue returns up to limit unfinished tasks due strictly
	// before the given instant, ordered by due time ascending.
	ListOverdue(ctx context.Context, userID int64, before time.Time, limit int) ([]*entity.Task, error)
}
