package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/muster/internal/db"
	"github.com/alexanderramin/muster/internal/domain"
)

// SQLiteRankRequirementRepo implements RankRequirementRepo using a SQLite database.
type SQLiteRankRequirementRepo struct {
	db db.DBTX
}

func NewSQLiteRankRequirementRepo(conn db.DBTX) *SQLiteRankRequirementRepo {
	return &SQLiteRankRequirementRepo{db: conn}
}

func (r *SQLiteRankRequirementRepo) Get(ctx context.Context, rank string) (*domain.RankRequirement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT rank, months, activities, level FROM rank_requirements WHERE rank = ?`, rank)

	var req domain.RankRequirement
	if err := row.Scan(&req.Rank, &req.Months, &req.Activities, &req.Level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rank requirement %q: %w", rank, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning rank requirement: %w", err)
	}
	return &req, nil
}

// List returns the stored rows as a RequirementTable. Ranks without a row
// resolve to the unenforced requirement through RequirementTable.For.
func (r *SQLiteRankRequirementRepo) List(ctx context.Context) (domain.RequirementTable, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT rank, months, activities, level FROM rank_requirements`)
	if err != nil {
		return nil, fmt.Errorf("listing rank requirements: %w", err)
	}
	defer rows.Close()

	table := domain.RequirementTable{}
	for rows.Next() {
		var req domain.RankRequirement
		if err := rows.Scan(&req.Rank, &req.Months, &req.Activities, &req.Level); err != nil {
			return nil, fmt.Errorf("scanning rank requirement row: %w", err)
		}
		table[req.Rank] = req
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rank requirements: %w", err)
	}
	return table, nil
}

func (r *SQLiteRankRequirementRepo) Upsert(ctx context.Context, req domain.RankRequirement) error {
	query := `INSERT INTO rank_requirements (rank, months, activities, level) VALUES (?, ?, ?, ?)
		ON CONFLICT(rank) DO UPDATE SET months = excluded.months, activities = excluded.activities, level = excluded.level`
	if _, err := r.db.ExecContext(ctx, query, req.Rank, req.Months, req.Activities, req.Level); err != nil {
		return fmt.Errorf("upserting rank requirement: %w", err)
	}
	return nil
}
