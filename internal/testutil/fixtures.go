package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/google/uuid"
)

var testKeyCounter atomic.Int64

// Member options
type MemberOption func(*domain.Member)

func WithKey(key string) MemberOption {
	return func(m *domain.Member) {
		m.Key = key
	}
}

func WithRank(rank string) MemberOption {
	return func(m *domain.Member) {
		m.Rank = rank
	}
}

func WithLevel(level int) MemberOption {
	return func(m *domain.Member) {
		m.Level = level
	}
}

func WithJoinDate(d time.Time) MemberOption {
	return func(m *domain.Member) {
		m.JoinDate = &d
	}
}

func WithoutJoinDate() MemberOption {
	return func(m *domain.Member) {
		m.JoinDate = nil
	}
}

func WithGroup(g string) MemberOption {
	return func(m *domain.Member) {
		m.Group = g
	}
}

// NewTestMember returns a Gefreiter who joined a year ago, keyed by a unique
// name-derived key.
func NewTestMember(name string, opts ...MemberOption) *domain.Member {
	now := time.Now().UTC()
	join := Date(now.Year()-1, int(now.Month()), 1)
	m := &domain.Member{
		ID:        uuid.New().String(),
		Key:       fmt.Sprintf("%s#%d", name, testKeyCounter.Add(1)),
		Name:      name,
		Level:     100,
		Rank:      "Gefreiter",
		JoinDate:  &join,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session options
type SessionOption func(*domain.Session)

func WithMaps(maps ...string) SessionOption {
	return func(s *domain.Session) {
		s.Maps = maps
	}
}

func NewTestSession(title string, date time.Time, opts ...SessionOption) *domain.Session {
	s := &domain.Session{
		ID:        uuid.New().String(),
		Title:     title,
		Date:      date,
		Maps:      []string{},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attendance options
type AttendanceOption func(*domain.AttendanceRecord)

func WithCategory(c domain.AttendanceCategory) AttendanceOption {
	return func(r *domain.AttendanceRecord) {
		r.Category = c
	}
}

func WithSessionID(id string) AttendanceOption {
	return func(r *domain.AttendanceRecord) {
		r.SessionID = &id
	}
}

// NewTestAttendance returns a training record for memberKey on date.
func NewTestAttendance(memberKey string, date time.Time, opts ...AttendanceOption) *domain.AttendanceRecord {
	r := &domain.AttendanceRecord{
		ID:        uuid.New().String(),
		MemberKey: memberKey,
		Date:      date,
		Category:  domain.CategoryTraining,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Date builds a UTC midnight date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
