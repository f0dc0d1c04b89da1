package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent so it is safe to run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id             TEXT PRIMARY KEY,
		member_key     TEXT NOT NULL,
		name           TEXT NOT NULL,
		level          INTEGER NOT NULL DEFAULT 0 CHECK(level >= 0),
		rank           TEXT NOT NULL,
		join_date      TEXT,
		last_promotion TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_members_key ON members(member_key)`,
	`CREATE INDEX IF NOT EXISTS idx_members_rank ON members(rank)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		session_date TEXT NOT NULL,
		maps         TEXT NOT NULL DEFAULT '[]',
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(session_date)`,

	// session_id is deliberately not a foreign key: records outlive the
	// sessions they point at.
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id          TEXT PRIMARY KEY,
		member_key  TEXT NOT NULL,
		record_date TEXT NOT NULL,
		category    TEXT NOT NULL CHECK(category IN ('training','event','reserve')),
		session_id  TEXT,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_member ON attendance_records(member_key)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance_records(record_date)`,

	`CREATE TABLE IF NOT EXISTS rank_requirements (
		rank       TEXT PRIMARY KEY,
		months     INTEGER NOT NULL DEFAULT 0 CHECK(months >= 0),
		activities INTEGER NOT NULL DEFAULT 0 CHECK(activities >= 0),
		level      INTEGER NOT NULL DEFAULT 0 CHECK(level >= 0)
	)`,

	// Roster metadata carried over from the spreadsheet-era roster.
	`ALTER TABLE members ADD COLUMN grp TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE members ADD COLUMN comment TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE members ADD COLUMN no_response INTEGER NOT NULL DEFAULT 0 CHECK(no_response >= 0)`,
}
