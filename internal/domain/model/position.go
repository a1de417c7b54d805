// Package model contains domain models passed between layers.
package model

import "strings"

// Sport identifies the rule set a season record belongs to.
type Sport string

// Supported sports.
const (
	Football   Sport = "football"
	Basketball Sport = "basketball"
)

// ParseSport normalises a sport name. Unknown names return false.
func ParseSport(s string) (Sport, bool) {
	switch Sport(strings.ToLower(strings.TrimSpace(s))) {
	case Football:
		return Football, true
	case Basketball:
		return Basketball, true
	}
	return "", false
}

// Position is a canonical position tag, unique across sports.
type Position string

// Football positions.
const (
	QB   Position = "QB"
	RB   Position = "RB"
	WR   Position = "WR"
	TE   Position = "TE"
	OL   Position = "OL"
	DL   Position = "DL"
	EDGE Position = "EDGE"
	LB   Position = "LB"
	CB   Position = "CB"
	S    Position = "S"
	K    Position = "K"
	P    Position = "P"
)

// Basketball positions.
const (
	PG Position = "PG"
	SG Position = "SG"
	SF Position = "SF"
	PF Position = "PF"
	C  Position = "C"
)

// Unknown marks a tag that could not be resolved for its sport.
const Unknown Position = "UNKNOWN"

var footballAliases = map[string]Position{
	"QB": QB,
	"RB": RB, "HB": RB, "FB": RB,
	"WR": WR,
	"TE": TE,
	"OL": OL, "OT": OL, "OG": OL, "T": OL, "G": OL, "C": OL,
	"DL": DL, "DT": DL, "NT": DL,
	"EDGE": EDGE, "DE": EDGE, "RUSH": EDGE,
	"LB": LB, "ILB": LB, "MLB": LB, "OLB": LB,
	"CB": CB,
	"S": S, "FS": S, "SS": S, "DB": S,
	"K": K, "PK": K,
	"P": P,
}

var basketballAliases = map[string]Position{
	"PG": PG,
	"SG": SG, "G": SG,
	"SF": SF, "F": SF,
	"PF": PF,
	"C": C, "CENTER": C,
}

// ResolvePosition maps a raw tag to its canonical position for sport.
// The second return is false when the tag is not recognised; the position
// is then Unknown.
func ResolvePosition(sport Sport, tag string) (Position, bool) {
	key := strings.ToUpper(strings.TrimSpace(tag))
	var table map[string]Position
	switch sport {
	case Football:
		table = footballAliases
	case Basketball:
		table = basketballAliases
	default:
		return Unknown, false
	}
	if p, ok := table[key]; ok {
		return p, true
	}
	return Unknown, false
}

// ClassYear is the athlete's eligibility year.
type ClassYear string

// Class years.
const (
	Freshman  ClassYear = "FR"
	Sophomore ClassYear = "SO"
	Junior    ClassYear = "JR"
	Senior    ClassYear = "SR"
	Graduate  ClassYear = "GR"
)

// Athlete identifies a player. Only Team and Class change between seasons.
type Athlete struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PositionTag string    `json:"position"`
	Class       ClassYear `json:"class"`
	TeamID      string    `json:"team_id"`
}
