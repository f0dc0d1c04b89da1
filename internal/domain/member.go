package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Member struct {
	ID            string
	Key           string
	Name          string
	Level         int
	Rank          string
	Group         string
	Comment       string
	JoinDate      *time.Time
	LastPromotion *time.Time
	// NoResponse counts consecutive sessions the member neither attended nor
	// answered. Recorded attendance resets it.
	NoResponse int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AttendanceKey is the key attendance records are filed under. It prefers the
// external Key and falls back to Name.
func (m *Member) AttendanceKey() string {
	return CoalesceStr(m.Key, m.Name)
}

// Validate checks the fields a stored member must carry.
func (m *Member) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("member name is required")
	}
	if m.Level < 0 {
		return fmt.Errorf("member level %d must not be negative", m.Level)
	}
	if m.Rank == "" {
		return fmt.Errorf("member rank is required")
	}
	if m.NoResponse < 0 {
		return fmt.Errorf("member no-response count %d must not be negative", m.NoResponse)
	}
	return nil
}

// Promote moves the member to next and stamps the promotion date.
func (m *Member) Promote(next string, now time.Time) error {
	if next == "" {
		return fmt.Errorf("member %q already holds the highest rank", m.AttendanceKey())
	}
	m.Rank = next
	m.LastPromotion = &now
	m.UpdatedAt = now
	return nil
}

// Demote moves the member down to previous. The promotion date is kept.
func (m *Member) Demote(previous string, now time.Time) error {
	if previous == "" {
		return fmt.Errorf("member %q already holds the lowest rank", m.AttendanceKey())
	}
	m.Rank = previous
	m.UpdatedAt = now
	return nil
}

// DefaultNoResponseThreshold is the no-response count at which a member is
// flagged.
const DefaultNoResponseThreshold = 10

// Unresponsive reports whether the no-response count has reached threshold.
// A threshold below 1 never flags.
func (m *Member) Unresponsive(threshold int) bool {
	return threshold > 0 && m.NoResponse >= threshold
}

// NoGroup names the bucket for members without a group.
const NoGroup = "Ohne Gruppe"

// MemberGroup is one bucket of a roster grouped by Member.Group.
type MemberGroup struct {
	Name    string
	Members []*Member
}

// GroupMembers buckets members by group, keeping their order within each
// bucket. Groups sort by name; blank groups collect under NoGroup, which
// comes last.
func GroupMembers(members []*Member) []MemberGroup {
	idx := map[string]int{}
	var groups []MemberGroup
	for _, m := range members {
		name := strings.TrimSpace(m.Group)
		if name == "" {
			name = NoGroup
		}
		i, ok := idx[name]
		if !ok {
			i = len(groups)
			idx[name] = i
			groups = append(groups, MemberGroup{Name: name})
		}
		groups[i].Members = append(groups[i].Members, m)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if (groups[i].Name == NoGroup) != (groups[j].Name == NoGroup) {
			return groups[j].Name == NoGroup
		}
		return strings.ToLower(groups[i].Name) < strings.ToLower(groups[j].Name)
	})
	return groups
}
