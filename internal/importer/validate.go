package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidateRosterBundle checks the bundle against the configured rank order
// before conversion. Returns a slice of all validation errors found.
func ValidateRosterBundle(b *RosterBundle, order domain.RankOrder) []error {
	var errs []error

	errs = append(errs, validateRanks(b.Ranks, order)...)

	sessionRefs := make(map[string]bool)
	errs = append(errs, validateSessions(b.Sessions, sessionRefs)...)
	errs = append(errs, validateMembers(b.Members, order)...)
	errs = append(errs, validateAttendance(b.Attendance, sessionRefs)...)
	errs = append(errs, validateRequirements(b.RankRequirements, order)...)

	return errs
}

func validateRanks(ranks []string, order domain.RankOrder) []error {
	if len(ranks) == 0 {
		return nil
	}
	var errs []error
	if _, err := domain.NewRankOrder(ranks); err != nil {
		errs = append(errs, fmt.Errorf("ranks: %w", err))
	}
	for i, r := range ranks {
		if r != "" && !order.Contains(r) {
			errs = append(errs, fmt.Errorf("ranks[%d]: %q is not a configured rank", i, r))
		}
	}
	return errs
}

func validateSessions(sessions []SessionImport, refs map[string]bool) []error {
	var errs []error
	for i, s := range sessions {
		prefix := fmt.Sprintf("sessions[%d]", i)
		if s.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[s.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, s.Ref))
		} else {
			refs[s.Ref] = true
		}
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = append(errs, validateDate(prefix+".date", s.Date, true)...)
	}
	return errs
}

func validateMembers(members []MemberImport, order domain.RankOrder) []error {
	var errs []error
	keys := make(map[string]bool)
	for i, m := range members {
		prefix := fmt.Sprintf("members[%d]", i)
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if key := domain.CoalesceStr(m.Key, m.Name); key != "" {
			if keys[key] {
				errs = append(errs, fmt.Errorf("%s: duplicate member key %q", prefix, key))
			}
			keys[key] = true
		}
		if m.Rank == "" {
			errs = append(errs, fmt.Errorf("%s.rank is required", prefix))
		} else if !order.Contains(m.Rank) {
			errs = append(errs, fmt.Errorf("%s.rank: unknown rank %q", prefix, m.Rank))
		}
		if m.Level != nil && *m.Level < 0 {
			errs = append(errs, fmt.Errorf("%s.level must not be negative", prefix))
		}
		if m.NoResponse != nil && *m.NoResponse < 0 {
			errs = append(errs, fmt.Errorf("%s.no_response must not be negative", prefix))
		}
		if m.JoinDate != nil {
			errs = append(errs, validateDate(prefix+".join_date", *m.JoinDate, false)...)
		}
		if m.LastPromotion != nil {
			errs = append(errs, validateDate(prefix+".last_promotion", *m.LastPromotion, false)...)
		}
	}
	return errs
}

func validateAttendance(attendance map[string][]AttendanceImport, sessionRefs map[string]bool) []error {
	var errs []error
	for _, key := range sortedKeys(attendance) {
		if key == "" {
			errs = append(errs, fmt.Errorf("attendance: member key must not be empty"))
			continue
		}
		for i, a := range attendance[key] {
			prefix := fmt.Sprintf("attendance[%q][%d]", key, i)
			errs = append(errs, validateDate(prefix+".date", a.Date, true)...)
			if _, ok := domain.ParseAttendanceCategory(a.Category); !ok {
				errs = append(errs, fmt.Errorf("%s.category: invalid value %q", prefix, a.Category))
			}
			if a.SessionRef != nil && !sessionRefs[*a.SessionRef] {
				errs = append(errs, fmt.Errorf("%s.session_ref %q not found", prefix, *a.SessionRef))
			}
		}
	}
	return errs
}

func validateRequirements(reqs map[string]RequirementImport, order domain.RankOrder) []error {
	var errs []error
	for _, rank := range sortedKeys(reqs) {
		prefix := fmt.Sprintf("rank_requirements[%q]", rank)
		if !order.Contains(rank) {
			errs = append(errs, fmt.Errorf("%s: unknown rank", prefix))
		}
		r := reqs[rank]
		for _, f := range []struct {
			name string
			v    *int
		}{{"months", r.Months}, {"activities", r.Activities}, {"level", r.Level}} {
			if f.v != nil && *f.v < 0 {
				errs = append(errs, fmt.Errorf("%s.%s must not be negative", prefix, f.name))
			}
		}
	}
	return errs
}

func validateDate(field, value string, required bool) []error {
	if value == "" {
		if required {
			return []error{fmt.Errorf("%s is required", field)}
		}
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}

// sortedKeys keeps error order stable across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
