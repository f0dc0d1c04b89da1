package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/google/uuid"
)

// RosterData holds the domain objects produced from a bundle, ready for persistence.
type RosterData struct {
	Members      []*domain.Member
	Sessions     []*domain.Session
	Attendance   []*domain.AttendanceRecord
	Requirements []domain.RankRequirement
}

// Convert transforms a validated RosterBundle into domain objects.
// Call ValidateRosterBundle first; Convert assumes the bundle is valid.
func Convert(b *RosterBundle) (*RosterData, error) {
	now := time.Now().UTC()
	data := &RosterData{}

	refMap := make(map[string]string) // session ref -> UUID
	for _, s := range b.Sessions {
		date, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing session %q date: %w", s.Ref, err)
		}
		maps := s.Maps
		if maps == nil {
			maps = []string{}
		}
		id := uuid.New().String()
		refMap[s.Ref] = id
		data.Sessions = append(data.Sessions, &domain.Session{
			ID:        id,
			Title:     s.Title,
			Date:      date,
			Maps:      maps,
			CreatedAt: now,
		})
	}

	for _, m := range b.Members {
		data.Members = append(data.Members, &domain.Member{
			ID:            uuid.New().String(),
			Key:           domain.CoalesceStr(m.Key, m.Name),
			Name:          m.Name,
			Level:         domain.IntFromPtrWithDefault(0, m.Level),
			Rank:          m.Rank,
			Group:         m.Group,
			Comment:       m.Comment,
			JoinDate:      parseOptionalDate(m.JoinDate),
			LastPromotion: parseOptionalDate(m.LastPromotion),
			NoResponse:    domain.IntFromPtrWithDefault(0, m.NoResponse),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	for _, key := range sortedKeys(b.Attendance) {
		for _, a := range b.Attendance[key] {
			date, err := time.Parse(dateLayout, a.Date)
			if err != nil {
				return nil, fmt.Errorf("parsing attendance date for %q: %w", key, err)
			}
			category, ok := domain.ParseAttendanceCategory(a.Category)
			if !ok {
				return nil, fmt.Errorf("attendance category %q for %q", a.Category, key)
			}
			var sessionID *string
			if a.SessionRef != nil {
				id, ok := refMap[*a.SessionRef]
				if !ok {
					return nil, fmt.Errorf("session_ref %q not found", *a.SessionRef)
				}
				sessionID = &id
			}
			data.Attendance = append(data.Attendance, &domain.AttendanceRecord{
				ID:        uuid.New().String(),
				MemberKey: key,
				Date:      date,
				Category:  category,
				SessionID: sessionID,
				CreatedAt: now,
			})
		}
	}

	for _, rank := range sortedKeys(b.RankRequirements) {
		r := b.RankRequirements[rank]
		data.Requirements = append(data.Requirements, domain.RankRequirement{
			Rank:       rank,
			Months:     domain.IntFromPtrWithDefault(0, r.Months),
			Activities: domain.IntFromPtrWithDefault(0, r.Activities),
			Level:      domain.IntFromPtrWithDefault(0, r.Level),
		})
	}

	return data, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
