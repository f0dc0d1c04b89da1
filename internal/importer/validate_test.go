package importer

import (
	"strings"
	"testing"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }

func validMinimalBundle() *RosterBundle {
	return &RosterBundle{
		Sessions: []SessionImport{{Ref: "s1", Title: "Training", Date: "2025-05-03"}},
		Members:  []MemberImport{{Name: "Anna", Rank: "Gefreiter"}},
		Attendance: map[string][]AttendanceImport{
			"Anna": {{Date: "2025-05-03", Category: "training", SessionRef: ptrStr("s1")}},
		},
	}
}

func errorsText(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

func TestValidateRosterBundle_ValidMinimal(t *testing.T) {
	errs := ValidateRosterBundle(validMinimalBundle(), domain.DefaultRankOrder())
	assert.Empty(t, errs)
}

func TestValidateRosterBundle_ValidFile(t *testing.T) {
	b, err := LoadRosterBundle("testdata/roster.json")
	require.NoError(t, err)

	errs := ValidateRosterBundle(b, domain.DefaultRankOrder())
	assert.Empty(t, errs, errorsText(errs))
}

func TestValidateRosterBundle_CollectsAllErrors(t *testing.T) {
	b := &RosterBundle{
		Sessions: []SessionImport{
			{Ref: "s1", Title: "", Date: "03.05.2025"},
			{Ref: "s1", Title: "Dup", Date: "2025-05-04"},
		},
		Members: []MemberImport{
			{Name: "", Rank: ""},
			{Name: "Anna", Rank: "General", Level: ptrInt(-1), JoinDate: ptrStr("2025/01/01")},
			{Name: "Anna", Rank: "Gefreiter"},
		},
		Attendance: map[string][]AttendanceImport{
			"Anna": {{Date: "", Category: "standby", SessionRef: ptrStr("s9")}},
		},
		RankRequirements: map[string]RequirementImport{
			"Gefreiter": {Months: ptrInt(-3)},
			"General":   {},
		},
	}

	errs := ValidateRosterBundle(b, domain.DefaultRankOrder())
	text := errorsText(errs)

	for _, want := range []string{
		"sessions[0].title is required",
		"sessions[0].date: invalid date format",
		`sessions[1].ref: duplicate ref "s1"`,
		"members[0].name is required",
		"members[0].rank is required",
		`members[1].rank: unknown rank "General"`,
		"members[1].level must not be negative",
		"members[1].join_date: invalid date format",
		`members[2]: duplicate member key "Anna"`,
		`attendance["Anna"][0].date is required`,
		`attendance["Anna"][0].category: invalid value "standby"`,
		`attendance["Anna"][0].session_ref "s9" not found`,
		`rank_requirements["Gefreiter"].months must not be negative`,
		`rank_requirements["General"]: unknown rank`,
	} {
		assert.Contains(t, text, want)
	}
	assert.Len(t, errs, 14)
}

func TestValidateRosterBundle_NegativeNoResponse(t *testing.T) {
	b := validMinimalBundle()
	b.Members[0].NoResponse = ptrInt(-2)

	errs := ValidateRosterBundle(b, domain.DefaultRankOrder())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "members[0].no_response must not be negative")
}

func TestValidateRosterBundle_KeyDefaultsToName(t *testing.T) {
	b := validMinimalBundle()
	b.Members = append(b.Members, MemberImport{Key: "Anna", Name: "Anna Zwei", Rank: "Gefreiter"})

	errs := ValidateRosterBundle(b, domain.DefaultRankOrder())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `duplicate member key "Anna"`)
}

func TestValidateRosterBundle_DeclaredRanks(t *testing.T) {
	b := validMinimalBundle()
	b.Ranks = []string{"Gefreiter", "Gefreiter", "Marschall"}

	errs := ValidateRosterBundle(b, domain.DefaultRankOrder())
	text := errorsText(errs)
	assert.Contains(t, text, "ranks:")
	assert.Contains(t, text, `ranks[2]: "Marschall" is not a configured rank`)
}

func TestValidateRosterBundle_CategoryAliases(t *testing.T) {
	for _, label := range []string{"Training", "ClanEvent", "event", "RESERVE"} {
		b := validMinimalBundle()
		b.Attendance["Anna"][0].Category = label
		assert.Empty(t, ValidateRosterBundle(b, domain.DefaultRankOrder()), label)
	}
}

func TestParseRosterBundle_InvalidJSON(t *testing.T) {
	_, err := ParseRosterBundle([]byte(`{"members": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}
