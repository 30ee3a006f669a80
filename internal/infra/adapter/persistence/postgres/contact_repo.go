package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"plannerx/internal/domain/entity"
	"plannerx/internal/repository"
)

// ContactRepo implements repository.ContactRepository using PostgreSQL.
type ContactRepo struct{ db *sql.DB }

// NewContactRepo creates a new PostgreSQL-backed contact repository.
func NewContactRepo(db *sql.DB) repository.ContactRepository {
	return &ContactRepo{db: db}
}

const contactColumns = `id, user_id, name, email, phone, birthday_date, name_day_date, notes, created_at, updated_at`

func scanContact(row interface{ Scan(...any) error }) (*entity.Contact, error) {
	var (
		contact  entity.Contact
		email    sql.NullString
		phone    sql.NullString
		birthday sql.NullTime
		nameDay  sql.NullTime
		notes    sql.NullString
	)
	err := row.Scan(
		&contact.ID, &contact.UserID, &contact.Name, &email, &phone,
		&birthday, &nameDay, &notes, &contact.CreatedAt, &contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	contact.Email = email.String
	contact.Phone = phone.String
	contact.Notes = notes.String
	if birthday.Valid {
		t := birthday.Time
		contact.BirthdayDate = &t
	}
	if nameDay.Valid {
		t := nameDay.Time
		contact.NameDayDate = &t
	}
	return &contact, nil
}

func (repo *ContactRepo) Get(ctx context.Context, id int64) (*entity.Contact, error) {
	const query = `
SELECT ` + contactColumns + `
FROM contacts
WHERE id = $1
LIMIT 1`
	contact, err := scanContact(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return contact, nil
}

func (repo *ContactRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Contact, error) {
	const query = `
SELECT ` + contactColumns + `
FROM contacts
WHERE user_id = $1
ORDER BY name ASC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contacts := make([]*entity.Contact, 0, 16)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: Scan: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUser: rows.Err: %w", err)
	}
	return contacts, nil
}

func (repo *ContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	const query = `
INSERT INTO contacts (user_id, name, email, phone, birthday_date, name_day_date, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		contact.UserID, contact.Name, contact.Email, contact.Phone,
		contact.BirthdayDate, contact.NameDayDate, contact.Notes,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ContactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	const query = `
UPDATE contacts
SET name = $2, email = $3, phone = $4, birthday_date = $5, name_day_date = $6,
    notes = $7, updated_at = NOW()
WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Phone,
		contact.BirthdayDate, contact.NameDayDate, contact.Notes,
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

func (repo *ContactRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM contacts WHERE id = $1`
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
