package domain

import "time"

// Session is a scheduled training or event. Sessions are the denominator for
// attendance percentages.
type Session struct {
	ID        string
	Title     string
	Date      time.Time
	Maps      []string
	CreatedAt time.Time
}

// AttendanceRecord is one member's presence at a session. Records are
// immutable once stored; SessionID may reference a session that no longer exists.
type AttendanceRecord struct {
	ID        string
	MemberKey string
	Date      time.Time
	Category  AttendanceCategory
	SessionID *string
	CreatedAt time.Time
}
