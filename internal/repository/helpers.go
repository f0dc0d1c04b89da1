package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// encodeMaps stores a label list as JSON text; nil becomes "[]".
func encodeMaps(maps []string) (string, error) {
	if maps == nil {
		maps = []string{}
	}
	b, err := json.Marshal(maps)
	if err != nil {
		return "", fmt.Errorf("encoding maps: %w", err)
	}
	return string(b), nil
}

func decodeMaps(raw string) ([]string, error) {
	maps := []string{}
	if raw == "" {
		return maps, nil
	}
	if err := json.Unmarshal([]byte(raw), &maps); err != nil {
		return nil, fmt.Errorf("decoding maps: %w", err)
	}
	return maps, nil
}

// parseTimestamps parses the created_at/updated_at style columns.
func parseTimestamps(pairs ...timestampField) error {
	for _, p := range pairs {
		t, err := time.Parse(time.RFC3339, p.raw)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", p.name, err)
		}
		*p.dst = t
	}
	return nil
}

type timestampField struct {
	name string
	raw  string
	dst  *time.Time
}
