package repository

import (
	"context"
	"time"

	"plannerx/internal/domain/entity"
)

// EventRepository provides access to stored events.
type EventRepository interface {
	Get(ctx context.Context, id int64) (*entity.Event, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Event, error)
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id int64) error

	// ListDigestCandidates returns every event of the user that could
	// produce an occurrence inside [dayStart, dayEnd): one-off events
	// anchored in the window, plus ALL repeating events anchored before
	// the window end. Repeating events anchored weeks in the past must
	// be included so the recurrence expander can project them onto the
	// day; filtering them out by start_at would silently drop them.
	ListDigestCandidates(ctx context.Context, userID int64, dayStart, dayEnd time.Time) ([]*entity.Event, error)
}
