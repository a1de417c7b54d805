package model

import "fmt"

// SeasonStatRecord is one athlete-season of aggregate statistics. Stats
// holds raw counts keyed by stat name; an absent key means the stat was
// not collected, not that it was zero.
type SeasonStatRecord struct {
	AthleteID    string             `json:"athlete_id"`
	Sport        Sport              `json:"sport"`
	Season       int                `json:"season"`
	GamesPlayed  int                `json:"games_played"`
	GamesStarted int                `json:"games_started"`
	Snaps        float64            `json:"snaps"` // snaps for football, minutes for basketball
	Stats        map[string]float64 `json:"stats"`
}

// Stat returns the named stat and whether it was present. Negative values
// are treated as zero.
func (r SeasonStatRecord) Stat(name string) (float64, bool) {
	v, ok := r.Stats[name]
	if !ok {
		return 0, false
	}
	if v < 0 {
		return 0, true
	}
	return v, true
}

// Limits are the theoretical season maxima for a sport.
type Limits struct {
	MaxGames int
	MaxSnaps float64
}

// Violations lists every count that exceeds limits or is internally
// inconsistent. An empty result means the record is within bounds.
func (r SeasonStatRecord) Violations(l Limits) []string {
	var out []string
	if r.GamesPlayed < 0 {
		out = append(out, fmt.Sprintf("games_played %d is negative", r.GamesPlayed))
	}
	if l.MaxGames > 0 && r.GamesPlayed > l.MaxGames {
		out = append(out, fmt.Sprintf("games_played %d exceeds season maximum %d", r.GamesPlayed, l.MaxGames))
	}
	if r.GamesStarted > r.GamesPlayed {
		out = append(out, fmt.Sprintf("games_started %d exceeds games_played %d", r.GamesStarted, r.GamesPlayed))
	}
	if r.Snaps < 0 {
		out = append(out, fmt.Sprintf("snaps %.0f is negative", r.Snaps))
	}
	if l.MaxSnaps > 0 && r.Snaps > l.MaxSnaps {
		out = append(out, fmt.Sprintf("snaps %.0f exceeds season maximum %.0f", r.Snaps, l.MaxSnaps))
	}
	return out
}

// Clamped returns a copy with games and snaps forced into limits.
func (r SeasonStatRecord) Clamped(l Limits) SeasonStatRecord {
	out := r
	if out.GamesPlayed < 0 {
		out.GamesPlayed = 0
	}
	if l.MaxGames > 0 && out.GamesPlayed > l.MaxGames {
		out.GamesPlayed = l.MaxGames
	}
	if out.GamesStarted < 0 {
		out.GamesStarted = 0
	}
	if out.GamesStarted > out.GamesPlayed {
		out.GamesStarted = out.GamesPlayed
	}
	if out.Snaps < 0 {
		out.Snaps = 0
	}
	if l.MaxSnaps > 0 && out.Snaps > l.MaxSnaps {
		out.Snaps = l.MaxSnaps
	}
	return out
}

// StarterRate is games started over games played, 0 when no games.
func (r SeasonStatRecord) StarterRate() float64 {
	if r.GamesPlayed <= 0 {
		return 0
	}
	rate := float64(r.GamesStarted) / float64(r.GamesPlayed)
	if rate > 1 {
		return 1
	}
	if rate < 0 {
		return 0
	}
	return rate
}
