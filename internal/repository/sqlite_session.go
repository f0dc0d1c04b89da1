package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/muster/internal/db"
	"github.com/alexanderramin/muster/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	maps, err := encodeMaps(s.Maps)
	if err != nil {
		return err
	}
	query := `INSERT INTO sessions (id, title, session_date, maps, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.Title,
		s.Date.Format(dateLayout),
		maps,
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, session_date, maps, created_at FROM sessions WHERE id = ?`, id)
	s, err := r.scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return s, err
}

// List returns sessions oldest first.
func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, session_date, maps, created_at FROM sessions ORDER BY session_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}

// Delete removes the session only. Attendance records referencing it stay.
func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return requireAffected(res, "session", id)
}

func (r *SQLiteSessionRepo) scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var date, maps, createdAt string

	if err := row.Scan(&s.ID, &s.Title, &date, &maps, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	var err error
	if s.Date, err = time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("parsing session_date: %w", err)
	}
	if s.Maps, err = decodeMaps(maps); err != nil {
		return nil, err
	}
	if err := parseTimestamps(timestampField{"created_at", createdAt, &s.CreatedAt}); err != nil {
		return nil, err
	}
	return &s, nil
}
