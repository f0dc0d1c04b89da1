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

// SQLiteMemberRepo implements MemberRepo using a SQLite database.
type SQLiteMemberRepo struct {
	db db.DBTX
}

func NewSQLiteMemberRepo(conn db.DBTX) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{db: conn}
}

const memberColumns = `id, member_key, name, level, rank, grp, comment, no_response, join_date, last_promotion, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteMemberRepo) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (` + memberColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.AttendanceKey(),
		m.Name,
		m.Level,
		m.Rank,
		m.Group,
		m.Comment,
		m.NoResponse,
		nullableTimeToString(m.JoinDate, dateLayout),
		nullableTimeToString(m.LastPromotion, dateLayout),
		m.CreatedAt.UTC().Format(time.RFC3339),
		m.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	m, err := r.scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return m, err
}

// GetByKey matches the attendance key exactly.
func (r *SQLiteMemberRepo) GetByKey(ctx context.Context, key string) (*domain.Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE member_key = ?`, key)
	m, err := r.scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %q: %w", key, ErrNotFound)
	}
	return m, err
}

func (r *SQLiteMemberRepo) List(ctx context.Context) ([]*domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+memberColumns+` FROM members ORDER BY name COLLATE NOCASE, member_key`)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		m, err := r.scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}
	return members, nil
}

func (r *SQLiteMemberRepo) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET member_key = ?, name = ?, level = ?, rank = ?, grp = ?, comment = ?,
		no_response = ?, join_date = ?, last_promotion = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.AttendanceKey(),
		m.Name,
		m.Level,
		m.Rank,
		m.Group,
		m.Comment,
		m.NoResponse,
		nullableTimeToString(m.JoinDate, dateLayout),
		nullableTimeToString(m.LastPromotion, dateLayout),
		m.UpdatedAt.UTC().Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	return requireAffected(res, "member", m.ID)
}

func (r *SQLiteMemberRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return requireAffected(res, "member", id)
}

// scanMember returns sql.ErrNoRows unwrapped so callers can attach the lookup key.
func (r *SQLiteMemberRepo) scanMember(row rowScanner) (*domain.Member, error) {
	var m domain.Member
	var joinDate, lastPromotion sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&m.ID, &m.Key, &m.Name, &m.Level, &m.Rank, &m.Group, &m.Comment, &m.NoResponse,
		&joinDate, &lastPromotion, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning member: %w", err)
	}

	m.JoinDate = parseNullableTime(joinDate, dateLayout)
	m.LastPromotion = parseNullableTime(lastPromotion, dateLayout)
	if err := parseTimestamps(
		timestampField{"created_at", createdAt, &m.CreatedAt},
		timestampField{"updated_at", updatedAt, &m.UpdatedAt},
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
