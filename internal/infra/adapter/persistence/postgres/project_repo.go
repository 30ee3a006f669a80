package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"plannerx/internal/domain/entity"
	"plannerx/internal/repository"
)

// ProjectRepo implements repository.ProjectRepository using PostgreSQL.
type ProjectRepo struct{ db *sql.DB }

// NewProjectRepo creates a new PostgreSQL-backed project repository.
func NewProjectRepo(db *sql.DB) repository.ProjectRepository {
	return &ProjectRepo{db: db}
}

const projectColumns = `id, user_id, name, color, description, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*entity.Project, error) {
	var (
		project     entity.Project
		description sql.NullString
	)
	err := row.Scan(
		&project.ID, &project.UserID, &project.Name, &project.Color,
		&description, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	project.Description = description.String
	return &project, nil
}

func (repo *ProjectRepo) Get(ctx context.Context, id int64) (*entity.Project, error) {
	const query = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1
LIMIT 1`
	project, err := scanProject(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return project, nil
}

func (repo *ProjectRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Project, error) {
	const query = `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1
ORDER BY name ASC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]*entity.Project, 0, 8)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: Scan: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUser: rows.Err: %w", err)
	}
	return projects, nil
}

func (repo *ProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	const query = `
INSERT INTO projects (user_id, name, color, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		project.UserID, project.Name, project.Color, project.Description,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	const query = `
UPDATE projects
SET name = $2, color = $3, description = $4, updated_at = NOW()
WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Color, project.Description,
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

func (repo *ProjectRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM projects WHERE id = $1`
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
