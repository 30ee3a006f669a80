package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"plannerx/internal/domain/entity"
	"plannerx/internal/repository"
)

// UserRepo implements repository.UserRepository using PostgreSQL.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a new PostgreSQL-backed user repository.
func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

const userColumns = `id, uid, email, email_verified, digest_enabled, digest_time, sms_enabled, phone_number, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var (
		user       entity.User
		digestTime sql.NullString
		phone      sql.NullString
	)
	err := row.Scan(
		&user.ID, &user.UID, &user.Email, &user.EmailVerified,
		&user.DigestEnabled, &digestTime, &user.SMSEnabled, &phone,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.DigestTime = digestTime.String
	user.PhoneNumber = phone.String
	return &user, nil
}

func (repo *UserRepo) Get(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return user, nil
}

func (repo *UserRepo) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE uid = $1
LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, uid))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUID: %w", err)
	}
	return user, nil
}

func (repo *UserRepo) ListDigestEnabled(ctx context.Context) ([]*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE digest_enabled = TRUE
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListDigestEnabled: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*entity.User, 0, 16)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListDigestEnabled: Scan: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListDigestEnabled: rows.Err: %w", err)
	}
	return users, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (uid, email, email_verified, digest_enabled, digest_time, sms_enabled, phone_number, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		user.UID, user.Email, user.EmailVerified, user.DigestEnabled,
		user.DigestTime, user.SMSEnabled, user.PhoneNumber,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Update(ctx context.Context, user *entity.User) error {
	const query = `
UPDATE users
SET email = $2, email_verified = $3, digest_enabled = $4, digest_time = $5,
    sms_enabled = $6, phone_number = $7, updated_at = NOW()
WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		user.ID, user.Email, user.EmailVerified, user.DigestEnabled,
		user.DigestTime, user.SMSEnabled, user.PhoneNumber,
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
