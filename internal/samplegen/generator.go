package samplegen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/valuation"
)

// Generation knobs.
const (
	currentSeason   = 2024
	footballShare   = 0.7
	missingStatRate = 0.1
	unknownTagRate  = 0.02
	maxQuality      = 1.2
)

// athleteNamespace makes athlete ids stable for a given seed and index.
var athleteNamespace = uuid.MustParse("6f1c1a52-4a0b-4d5e-9c1f-2f9a7d3e8b10")

type statRange struct {
	name string
	high float64 // a strong season
}

var footballProfiles = map[string][]statRange{
	"QB":   {{"pass_attempts", 450}, {"completions", 300}, {"passing_yards", 3800}, {"passing_tds", 32}, {"rushing_yards", 500}},
	"RB":   {{"rushing_yards", 1300}, {"rushing_tds", 14}, {"receiving_yards", 350}, {"receptions", 35}},
	"WR":   {{"receiving_yards", 1200}, {"receptions", 85}, {"receiving_tds", 11}, {"yards_after_catch", 450}},
	"TE":   {{"receiving_yards", 700}, {"receptions", 55}, {"receiving_tds", 8}, {"blocking_grade", 80}},
	"OL":   {{"pass_block_grade", 85}, {"run_block_grade", 85}, {"pancakes", 40}},
	"DL":   {{"tackles_for_loss", 10}, {"sacks", 6}, {"tackles", 45}, {"pressures", 30}},
	"EDGE": {{"sacks", 10}, {"tackles_for_loss", 14}, {"tackles", 45}, {"pressures", 45}},
	"LB":   {{"tackles", 100}, {"tackles_for_loss", 10}, {"sacks", 5}, {"pass_breakups", 6}, {"interceptions", 2}},
	"CB":   {{"pass_breakups", 13}, {"interceptions", 4}, {"tackles", 45}},
	"S":    {{"tackles", 75}, {"interceptions", 4}, {"pass_breakups", 9}, {"tackles_for_loss", 5}},
	"K":    {{"fg_attempts", 25}, {"fg_made", 21}, {"fg_made_50_plus", 4}},
	"P":    {{"punt_avg", 45}, {"inside_20", 28}, {"net_avg", 41}},
}

var basketballProfiles = map[string][]statRange{
	"PG": {{"assists", 200}, {"points", 500}, {"threes_made", 70}, {"steals", 55}},
	"SG": {{"points", 550}, {"threes_made", 80}, {"steals", 50}, {"assists", 120}},
	"SF": {{"points", 500}, {"rebounds", 220}, {"threes_made", 60}, {"assists", 100}, {"steals", 45}},
	"PF": {{"rebounds", 260}, {"points", 450}, {"blocks", 40}, {"offensive_rebounds", 70}},
	"C":  {{"rebounds", 280}, {"blocks", 55}, {"points", 420}, {"offensive_rebounds", 80}},
}

var (
	footballTags   = sortedKeys(footballProfiles)
	basketballTags = sortedKeys(basketballProfiles)
	conferences    = []string{"SEC", "Big Ten", "Big 12", "ACC", "Mountain West", "MAC", "Sun Belt"}
	exposures      = []model.ExposureTier{model.ExposureBlueBlood, model.ExposurePower, model.ExposureMid, model.ExposureSmall}
	classes        = []model.ClassYear{model.Freshman, model.Sophomore, model.Junior, model.Senior, model.Graduate}
)

// Generator produces valuation requests from a seeded source. It is not
// safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	seed int64
	next int
}

// NewGenerator returns a generator whose output depends only on seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Generate returns the next n requests.
func (g *Generator) Generate(n int) []valuation.Request {
	out := make([]valuation.Request, n)
	for i := range out {
		out[i] = g.request()
	}
	return out
}

func (g *Generator) request() valuation.Request {
	idx := g.next
	g.next++
	id := uuid.NewSHA1(athleteNamespace, []byte(strconv.FormatInt(g.seed, 10)+":"+strconv.Itoa(idx))).String()

	sport, tag, profile := g.position()
	if g.rng.Float64() < unknownTagRate {
		tag = "ATH"
	}
	quality := g.rng.Float64() * maxQuality
	class := classes[g.rng.Intn(len(classes))]
	teamID := fmt.Sprintf("team-%02d", g.rng.Intn(40))

	req := valuation.Request{
		Athlete: model.Athlete{
			ID:          id,
			Name:        fmt.Sprintf("Sample Athlete %d", idx),
			PositionTag: tag,
			Class:       class,
			TeamID:      teamID,
		},
		Record: g.season(id, sport, currentSeason, profile, quality),
		Team: model.TeamContext{
			TeamID:            teamID,
			Conference:        conferences[g.rng.Intn(len(conferences))],
			WinPct:            model.Pct(round(g.rng.Float64(), 3)),
			OpponentAvgWinPct: model.Pct(round(0.35+0.3*g.rng.Float64(), 3)),
			Exposure:          exposures[g.rng.Intn(len(exposures))],
		},
		Brand: model.BrandSignals{
			Followers:         math.Round(quality * 250_000 * g.rng.Float64()),
			EngagementRate:    round(0.01+0.07*g.rng.Float64(), 4),
			MediaMentions:     math.Round(quality * 120 * g.rng.Float64()),
			NationalTVAppears: float64(g.rng.Intn(8)),
		},
		Risk: model.RiskProfile{
			Injury:    round(0.2*g.rng.Float64(), 3),
			Variance:  round(0.1*g.rng.Float64(), 3),
			Character: round(0.05*g.rng.Float64(), 3),
			SchemeFit: round(0.1*g.rng.Float64(), 3),
		},
	}
	if class == model.Junior || class == model.Senior || class == model.Graduate {
		for s := 1; s <= 2; s++ {
			prior := quality * (0.7 + 0.3*g.rng.Float64())
			req.History = append(req.History, g.season(id, sport, currentSeason-s, profile, prior))
		}
	}
	return req
}

func (g *Generator) position() (model.Sport, string, []statRange) {
	if g.rng.Float64() < footballShare {
		tag := footballTags[g.rng.Intn(len(footballTags))]
		return model.Football, tag, footballProfiles[tag]
	}
	tag := basketballTags[g.rng.Intn(len(basketballTags))]
	return model.Basketball, tag, basketballProfiles[tag]
}

func (g *Generator) season(id string, sport model.Sport, season int, profile []statRange, quality float64) model.SeasonStatRecord {
	games, snapsPerGame := 12, 60.0
	if sport == model.Basketball {
		games, snapsPerGame = 32, 30.0
	}
	played := games - g.rng.Intn(games/3+1)
	rec := model.SeasonStatRecord{
		AthleteID:    id,
		Sport:        sport,
		Season:       season,
		GamesPlayed:  played,
		GamesStarted: int(float64(played) * math.Min(1, quality)),
		Snaps:        math.Round(float64(played) * snapsPerGame * (0.5 + 0.5*g.rng.Float64())),
		Stats:        make(map[string]float64, len(profile)),
	}
	for _, st := range profile {
		if g.rng.Float64() < missingStatRate {
			continue
		}
		rec.Stats[st.name] = math.Round(st.high * quality * (0.7 + 0.4*g.rng.Float64()))
	}
	// Makes never exceed attempts.
	if a, ok := rec.Stats["pass_attempts"]; ok && rec.Stats["completions"] > a {
		rec.Stats["completions"] = a
	}
	if a, ok := rec.Stats["fg_attempts"]; ok && rec.Stats["fg_made"] > a {
		rec.Stats["fg_made"] = a
	}
	return rec
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func sortedKeys(m map[string][]statRange) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
