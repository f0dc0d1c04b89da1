package domain

import "fmt"

// DefaultRanks is the clan's rank ladder, lowest first.
var DefaultRanks = []string{
	"Anwerber/AW",
	"Panzergrenadier",
	"Obergrenadier",
	"Gefreiter",
	"Obergefreiter",
	"Stabsgefreiter",
	"Unteroffizier",
	"Stabsunteroffizier (ZBV)",
	"Unterfeldwebel",
	"Feldwebel",
	"Oberfeldwebel",
	"Hauptfeldwebel",
	"Stabsfeldwebel",
	"Fähnrich",
	"Leutnant",
	"Oberleutnant",
	"Hauptmann",
	"Major",
	"Oberst",
}

// DefaultOfficerRank is the lowest rank counted as an officer.
const DefaultOfficerRank = "Fähnrich"

// RankOrder is a fixed, strictly ordered rank ladder. The zero value is an
// empty ladder in which every rank is unknown.
type RankOrder struct {
	names []string
	pos   map[string]int
}

// NewRankOrder builds a ladder from names, lowest first. Names must be
// non-empty and unique.
func NewRankOrder(names []string) (RankOrder, error) {
	if len(names) == 0 {
		return RankOrder{}, fmt.Errorf("rank order is empty")
	}
	pos := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			return RankOrder{}, fmt.Errorf("rank %d: name is empty", i)
		}
		if _, dup := pos[n]; dup {
			return RankOrder{}, fmt.Errorf("rank %d: duplicate rank %q", i, n)
		}
		pos[n] = i
	}
	cp := make([]string, len(names))
	copy(cp, names)
	return RankOrder{names: cp, pos: pos}, nil
}

// DefaultRankOrder returns the ladder built from DefaultRanks.
func DefaultRankOrder() RankOrder {
	o, err := NewRankOrder(DefaultRanks)
	if err != nil {
		panic(err)
	}
	return o
}

// Names returns a copy of the ladder.
func (o RankOrder) Names() []string {
	cp := make([]string, len(o.names))
	copy(cp, o.names)
	return cp
}

func (o RankOrder) Len() int { return len(o.names) }

// Position returns the zero-based position of rank.
func (o RankOrder) Position(rank string) (int, bool) {
	i, ok := o.pos[rank]
	return i, ok
}

func (o RankOrder) Contains(rank string) bool {
	_, ok := o.pos[rank]
	return ok
}

// Next returns the rank following rank. ok is false when rank is the top of
// the ladder or not on it at all.
func (o RankOrder) Next(rank string) (next string, ok bool) {
	i, found := o.pos[rank]
	if !found || i+1 >= len(o.names) {
		return "", false
	}
	return o.names[i+1], true
}

// Previous returns the rank below rank. ok is false when rank is the bottom of
// the ladder or not on it at all.
func (o RankOrder) Previous(rank string) (previous string, ok bool) {
	i, found := o.pos[rank]
	if !found || i == 0 {
		return "", false
	}
	return o.names[i-1], true
}

// AtLeast reports whether rank sits at or above floor. Unknown ranks are never
// at least anything.
func (o RankOrder) AtLeast(rank, floor string) bool {
	i, ok := o.pos[rank]
	if !ok {
		return false
	}
	j, ok := o.pos[floor]
	if !ok {
		return false
	}
	return i >= j
}

// RankRequirement holds the thresholds for promotion out of Rank. A zero
// threshold is not enforced.
type RankRequirement struct {
	Rank       string
	Months     int
	Activities int
	Level      int
}

// Unenforced reports whether no threshold applies.
func (r RankRequirement) Unenforced() bool {
	return r.Months <= 0 && r.Activities <= 0 && r.Level <= 0
}

// Validate rejects negative thresholds.
func (r RankRequirement) Validate() error {
	if r.Months < 0 || r.Activities < 0 || r.Level < 0 {
		return fmt.Errorf("requirement for %q: thresholds must not be negative (months=%d activities=%d level=%d)",
			r.Rank, r.Months, r.Activities, r.Level)
	}
	return nil
}

// RequirementTable maps rank names to requirements.
type RequirementTable map[string]RankRequirement

// For returns the requirement for rank. Ranks missing from the table get the
// all-zero requirement.
func (t RequirementTable) For(rank string) RankRequirement {
	if req, ok := t[rank]; ok {
		return req
	}
	return RankRequirement{Rank: rank}
}

// DefaultRequirements returns the seeded table for ranks: three months of
// service below the twelfth rank, three activities below the fifth, and level
// 80 for recruits.
func DefaultRequirements(ranks []string) RequirementTable {
	t := make(RequirementTable, len(ranks))
	for i, r := range ranks {
		req := RankRequirement{Rank: r}
		if i < 12 {
			req.Months = 3
		}
		if i < 5 {
			req.Activities = 3
		}
		if i == 0 {
			req.Level = 80
		}
		t[r] = req
	}
	return t
}
