package db

import "database/sql"

// MigrateUp creates the planner schema if it does not exist yet.
// Statements are idempotent so the worker can run this on every start.
func MigrateUp(db *sql.DB) error {
	tables := []string{
		`
CREATE TABLE IF NOT EXISTS users (
    id             SERIAL PRIMARY KEY,
    uid            VARCHAR(128) NOT NULL UNIQUE,
    email          VARCHAR(255) NOT NULL,
    email_verified BOOLEAN DEFAULT FALSE,
    digest_enabled BOOLEAN DEFAULT TRUE,
    digest_time    VARCHAR(5) DEFAULT '07:00',
    sms_enabled    BOOLEAN DEFAULT FALSE,
    phone_number   VARCHAR(20),
    created_at     TIMESTAMPTZ DEFAULT now(),
    updated_at     TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS projects (
    id          SERIAL PRIMARY KEY,
    user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name        VARCHAR(255) NOT NULL,
    color       VARCHAR(7) DEFAULT '#3B82F6',
    description TEXT,
    created_at  TIMESTAMPTZ DEFAULT now(),
    updated_at  TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS tasks (
    id           SERIAL PRIMARY KEY,
    user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    project_id   INTEGER REFERENCES projects(id) ON DELETE SET NULL,
    title        VARCHAR(255) NOT NULL,
    notes        TEXT,
    due_at       TIMESTAMPTZ,
    priority     VARCHAR(20) DEFAULT 'MEDIUM',
    status       VARCHAR(20) DEFAULT 'TODO',
    completed_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ DEFAULT now(),
    updated_at   TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS events (
    id          SERIAL PRIMARY KEY,
    user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title       VARCHAR(255) NOT NULL,
    description TEXT,
    location    VARCHAR(255),
    start_at    TIMESTAMPTZ NOT NULL,
    end_at      TIMESTAMPTZ,
    repeat_rule VARCHAR(20) DEFAULT 'NONE',
    created_at  TIMESTAMPTZ DEFAULT now(),
    updated_at  TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS contacts (
    id            SERIAL PRIMARY KEY,
    user_id       INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name          VARCHAR(255) NOT NULL,
    email         VARCHAR(255),
    phone         VARCHAR(20),
    birthday_date DATE,
    name_day_date DATE,
    notes         TEXT,
    created_at    TIMESTAMPTZ DEFAULT now(),
    updated_at    TIMESTAMPTZ DEFAULT now()
)`,
	}
	for _, stmt := range tables {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		// Digest-enabled user scan runs once per job.
		`CREATE INDEX IF NOT EXISTS idx_users_digest_enabled ON users(digest_enabled) WHERE digest_enabled = TRUE`,
		// Due-window and overdue task queries.
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_due ON tasks(user_id, due_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
		// Digest candidate selection filters on user, rule and anchor.
		`CREATE INDEX IF NOT EXISTS idx_events_user_start ON events(user_id, start_at)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
