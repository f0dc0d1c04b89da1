package eligibility

import "time"

// UnknownTenure is reported when a member has no join date. It compares below
// any positive requirement, so unknown tenure never satisfies one.
const UnknownTenure = -1

// MonthsSince returns the whole calendar months between joinDate and now. A
// month only counts once now has reached the join day-of-month. Future join
// dates yield 0; a nil join date yields UnknownTenure.
func MonthsSince(joinDate *time.Time, now time.Time) int {
	if joinDate == nil {
		return UnknownTenure
	}
	jy, jm, jd := joinDate.Date()
	ny, nm, nd := now.Date()

	months := (ny-jy)*12 + int(nm-jm)
	if nd < jd {
		months--
	}
	return max(0, months)
}

// MonthsSinceToday is MonthsSince against the current UTC date, the same clock
// reports default to.
func MonthsSinceToday(joinDate *time.Time) int {
	return MonthsSince(joinDate, time.Now().UTC())
}
