package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// RosterBundle is the top-level JSON structure for roster import.
type RosterBundle struct {
	Ranks            []string                      `json:"ranks,omitempty"`
	Sessions         []SessionImport               `json:"sessions"`
	Members          []MemberImport                `json:"members"`
	Attendance       map[string][]AttendanceImport `json:"attendance,omitempty"`
	RankRequirements map[string]RequirementImport  `json:"rank_requirements,omitempty"`
}

// SessionImport defines a session. Ref is local to the bundle and is how
// attendance entries point at it.
type SessionImport struct {
	Ref   string   `json:"ref"`
	Title string   `json:"title"`
	Date  string   `json:"date"`
	Maps  []string `json:"maps,omitempty"`
}

// MemberImport defines a roster entry. Key defaults to Name.
type MemberImport struct {
	Key           string  `json:"key,omitempty"`
	Name          string  `json:"name"`
	Level         *int    `json:"level,omitempty"`
	Rank          string  `json:"rank"`
	Group         string  `json:"group,omitempty"`
	Comment       string  `json:"comment,omitempty"`
	JoinDate      *string `json:"join_date,omitempty"`
	LastPromotion *string `json:"last_promotion,omitempty"`
	NoResponse    *int    `json:"no_response,omitempty"`
}

// AttendanceImport defines one attendance entry under a member key.
type AttendanceImport struct {
	Date       string  `json:"date"`
	Category   string  `json:"category"`
	SessionRef *string `json:"session_ref,omitempty"`
}

// RequirementImport defines promotion thresholds. Omitted fields are not enforced.
type RequirementImport struct {
	Months     *int `json:"months,omitempty"`
	Activities *int `json:"activities,omitempty"`
	Level      *int `json:"level,omitempty"`
}

// LoadRosterBundle reads and parses a roster import JSON file.
func LoadRosterBundle(path string) (*RosterBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRosterBundle(data)
}

func ParseRosterBundle(data []byte) (*RosterBundle, error) {
	var bundle RosterBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &bundle, nil
}
