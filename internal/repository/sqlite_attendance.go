package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/muster/internal/db"
	"github.com/alexanderramin/muster/internal/domain"
)

// SQLiteAttendanceRepo implements AttendanceRepo using a SQLite database.
type SQLiteAttendanceRepo struct {
	db db.DBTX
}

func NewSQLiteAttendanceRepo(conn db.DBTX) *SQLiteAttendanceRepo {
	return &SQLiteAttendanceRepo{db: conn}
}

const attendanceColumns = `id, member_key, record_date, category, session_id, created_at`

func (r *SQLiteAttendanceRepo) Create(ctx context.Context, rec *domain.AttendanceRecord) error {
	query := `INSERT INTO attendance_records (` + attendanceColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.MemberKey,
		rec.Date.Format(dateLayout),
		string(rec.Category),
		nullableString(rec.SessionID),
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting attendance record: %w", err)
	}
	return nil
}

// ListByMember returns the member's records oldest first. An unknown key
// yields an empty slice.
func (r *SQLiteAttendanceRepo) ListByMember(ctx context.Context, memberKey string) ([]domain.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records WHERE member_key = ? ORDER BY record_date, created_at`,
		memberKey)
	if err != nil {
		return nil, fmt.Errorf("listing attendance: %w", err)
	}
	defer rows.Close()

	records := []domain.AttendanceRecord{}
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attendance: %w", err)
	}
	return records, nil
}

// ListAll groups every stored record by member key.
func (r *SQLiteAttendanceRepo) ListAll(ctx context.Context) (map[string][]domain.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records ORDER BY member_key, record_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing attendance: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.AttendanceRecord)
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		grouped[rec.MemberKey] = append(grouped[rec.MemberKey], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attendance: %w", err)
	}
	return grouped, nil
}

func (r *SQLiteAttendanceRepo) DeleteByMember(ctx context.Context, memberKey string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attendance_records WHERE member_key = ?`, memberKey)
	if err != nil {
		return 0, fmt.Errorf("deleting attendance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking affected rows: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteAttendanceRepo) scanRecord(row rowScanner) (domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	var date, category, createdAt string
	var sessionID sql.NullString

	if err := row.Scan(&rec.ID, &rec.MemberKey, &date, &category, &sessionID, &createdAt); err != nil {
		return rec, fmt.Errorf("scanning attendance record: %w", err)
	}

	var err error
	if rec.Date, err = time.Parse(dateLayout, date); err != nil {
		return rec, fmt.Errorf("parsing record_date: %w", err)
	}
	rec.Category = domain.AttendanceCategory(category)
	rec.SessionID = stringPtr(sessionID)
	if err := parseTimestamps(timestampField{"created_at", createdAt, &rec.CreatedAt}); err != nil {
		return rec, err
	}
	return rec, nil
}
