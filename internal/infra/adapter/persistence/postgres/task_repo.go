// Package postgres provides PostgreSQL implementations of the repository
// interfaces using database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"plannerx/internal/domain/entity"
	"plannerx/internal/repository"
)

// TaskRepo implements repository.TaskRepository using PostgreSQL.
type TaskRepo struct{ db *sql.DB }

// NewTaskRepo creates a new PostgreSQL-backed task repository.
func NewTaskRepo(db *sql.DB) repository.TaskRepository {
	return &TaskRepo{db: db}
}

const taskColumns = `id, user_id, project_id, title, notes, due_at, priority, status, completed_at, created_at, updated_at`

// scanTask scans one task row, converting the stored enum strings into
// their closed domain types.
func scanTask(row interface{ Scan(...any) error }) (*entity.Task, error) {
	var (
		task      entity.Task
		projectID sql.NullInt64
		notes     sql.NullString
		dueAt     sql.NullTime
		priority  string
		status    string
		completed sql.NullTime
	)
	err := row.Scan(
		&task.ID, &task.UserID, &projectID, &task.Title, &notes, &dueAt,
		&priority, &status, &completed, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if projectID.Valid {
		task.ProjectID = &projectID.Int64
	}
	task.Notes = notes.String
	if dueAt.Valid {
		t := dueAt.Time
		task.DueAt = &t
	}
	if completed.Valid {
		t := completed.Time
		task.CompletedAt = &t
	}
	if task.Priority, err = entity.ParsePriority(priority); err != nil {
		return nil, fmt.Errorf("scan task %d: %w", task.ID, err)
	}
	if task.Status, err = entity.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("scan task %d: %w", task.ID, err)
	}
	return &task, nil
}

func collectTasks(rows *sql.Rows) ([]*entity.Task, error) {
	defer func() { _ = rows.Close() }()

	tasks := make([]*entity.Task, 0, 16)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return tasks, nil
}

func (repo *TaskRepo) Get(ctx context.Context, id int64) (*entity.Task, error) {
	const query = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1
LIMIT 1`
	task, err := scanTask(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return task, nil
}

func (repo *TaskRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Task, error) {
	const query = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: QueryContext: %w", err)
	}
	return collectTasks(rows)
}

// ListDueBetween selects unfinished tasks due in the half-open window
// [from, to). Priority is ranked numerically in SQL so HIGH sorts before
// MEDIUM before LOW; a plain string sort would not give that order.
func (repo *TaskRepo) ListDueBetween(ctx context.Context, userID int64, from, to time.Time) ([]*entity.Task, error) {
	const query = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = $1
  AND status <> 'DONE'
  AND due_at >= $2
  AND due_at < $3
ORDER BY CASE priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END DESC, due_at ASC`
	rows, err := repo.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ListDueBetween: QueryContext: %w", err)
	}
	return collectTasks(rows)
}

func (repo *TaskRepo) ListOverdue(ctx context.Context, userID int64, before time.Time, limit int) ([]*entity.Task, error) {
	const query = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = $1
  AND status <> 'DONE'
  AND due_at < $2
ORDER BY due_at ASC
LIMIT $3`
	rows, err := repo.db.QueryContext(ctx, query, userID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("ListOverdue: QueryContext: %w", err)
	}
	return collectTasks(rows)
}

func (repo *TaskRepo) Create(ctx context.Context, task *entity.Task) error {
	const query = `
INSERT INTO tasks (user_id, project_id, title, notes, due_at, priority, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		task.UserID, task.ProjectID, task.Title, task.Notes, task.DueAt,
		task.Priority.String(), task.Status.String(),
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *TaskRepo) Update(ctx context.Context, task *entity.Task) error {
	const query = `
UPDATE tasks
SET project_id = $2, title = $3, notes = $4, due_at = $5, priority = $6,
    status = $7, completed_at = $8, updated_at = NOW()
WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		task.ID, task.ProjectID, task.Title, task.Notes, task.DueAt,
		task.Priority.String(), task.Status.String(), task.CompletedAt,
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

func (repo *TaskRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM tasks WHERE id = $1`
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
