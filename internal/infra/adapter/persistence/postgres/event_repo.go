package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"plannerx/internal/domain/entity"
	"plannerx/internal/repository"
)

// EventRepo implements repository.EventRepository using PostgreSQL.
type EventRepo struct{ db *sql.DB }

// NewEventRepo creates a new PostgreSQL-backed event repository.
func NewEventRepo(db *sql.DB) repository.EventRepository {
	return &EventRepo{db: db}
}

const eventColumns = `id, user_id, title, description, location, start_at, end_at, repeat_rule, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*entity.Event, error) {
	var (
		event       entity.Event
		description sql.NullString
		location    sql.NullString
		endAt       sql.NullTime
		repeatRule  string
	)
	err := row.Scan(
		&event.ID, &event.UserID, &event.Title, &description, &location,
		&event.StartAt, &endAt, &repeatRule, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.Description = description.String
	event.Location = location.String
	if endAt.Valid {
		t := endAt.Time
		event.EndAt = &t
	}
	if event.RepeatRule, err = entity.ParseRepeatRule(repeatRule); err != nil {
		return nil, fmt.Errorf("scan event %d: %w", event.ID, err)
	}
	return &event, nil
}

func collectEvents(rows *sql.Rows) ([]*entity.Event, error) {
	defer func() { _ = rows.Close() }()

	events := make([]*entity.Event, 0, 16)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return events, nil
}

func (repo *EventRepo) Get(ctx context.Context, id int64) (*entity.Event, error) {
	const query = `
SELECT ` + eventColumns + `
FROM events
WHERE id = $1
LIMIT 1`
	event, err := scanEvent(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return event, nil
}

func (repo *EventRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Event, error) {
	const query = `
SELECT ` + eventColumns + `
FROM events
WHERE user_id = $1
ORDER BY start_at ASC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: QueryContext: %w", err)
	}
	return collectEvents(rows)
}

// ListDigestCandidates selects one-off events anchored inside
// [dayStart, dayEnd) together with every repeating event anchored before
// dayEnd. Repeating events anchored long before the window stay in the
// candidate set; the recurrence expander decides whether they project
// onto the day.
func (repo *EventRepo) ListDigestCandidates(ctx context.Context, userID int64, dayStart, dayEnd time.Time) ([]*entity.Event, error) {
	const query = `
SELECT ` + eventColumns + `
FROM events
WHERE user_id = $1
  AND (
        (repeat_rule = 'NONE' AND start_at >= $2 AND start_at < $3)
     OR (repeat_rule <> 'NONE' AND start_at < $3)
  )
ORDER BY start_at ASC`
	rows, err := repo.db.QueryContext(ctx, query, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("ListDigestCandidates: QueryContext: %w", err)
	}
	return collectEvents(rows)
}

func (repo *EventRepo) Create(ctx context.Context, event *entity.Event) error {
	const query = `
INSERT INTO events (user_id, title, description, location, start_at, end_at, repeat_rule, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		event.UserID, event.Title, event.Description, event.Location,
		event.StartAt, event.EndAt, event.RepeatRule.String(),
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *EventRepo) Update(ctx context.Context, event *entity.Event) error {
	const query = `
UPDATE events
SET title = $2, description = $3, location = $4, start_at = $5, end_at = $6,
    repeat_rule = $7, updated_at = NOW()
WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Location,
		event.StartAt, event.EndAt, event.RepeatRule.String(),
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *EventRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM events WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
