package domain

import "strings"

// AttendanceCategory classifies an attendance record.
type AttendanceCategory string

const (
	CategoryTraining AttendanceCategory = "training"
	CategoryEvent    AttendanceCategory = "event"
	CategoryReserve  AttendanceCategory = "reserve"
)

type categoryRule struct {
	percent  bool
	activity bool
}

// categoryRules is the single table mapping categories to the metrics they feed.
// Reserve duty counts toward the activity requirement but never toward the
// attendance percentage.
var categoryRules = map[AttendanceCategory]categoryRule{
	CategoryTraining: {percent: true, activity: true},
	CategoryEvent:    {percent: true, activity: true},
	CategoryReserve:  {percent: false, activity: true},
}

// AllCategories lists the categories in display order.
var AllCategories = []AttendanceCategory{CategoryTraining, CategoryEvent, CategoryReserve}

// CountsTowardPercent reports whether the category is part of the attendance percentage.
func (c AttendanceCategory) CountsTowardPercent() bool {
	return categoryRules[c].percent
}

// CountsTowardActivity reports whether the category is part of the activity count.
func (c AttendanceCategory) CountsTowardActivity() bool {
	return categoryRules[c].activity
}

func (c AttendanceCategory) Valid() bool {
	_, ok := categoryRules[c]
	return ok
}

// categoryAliases accepts the labels used by older roster exports.
var categoryAliases = map[string]AttendanceCategory{
	"training":  CategoryTraining,
	"event":     CategoryEvent,
	"clanevent": CategoryEvent,
	"reserve":   CategoryReserve,
}

// ParseAttendanceCategory resolves a label case-insensitively.
func ParseAttendanceCategory(s string) (AttendanceCategory, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}
