package performance

import "github.com/okian/varsity/internal/domain/model"

// defaultScorers returns the built-in scorer for every known position.
// Breakpoints are calibration, not business rules; WithBreakpoints
// replaces them.
func defaultScorers() map[model.Position]Scorer {
	passRush := newPremierScorer("pass_rush",
		PremierStat{Name: "sacks", Weight: 0.40, Band: band(0, 0, 2, 25, 5, 55, 8, 80, 10, 95, 14, 100)},
		PremierStat{Name: "tackles_for_loss", Weight: 0.25, Band: band(0, 0, 4, 30, 8, 60, 12, 85, 18, 100)},
		PremierStat{Name: "tackles", Weight: 0.20, Band: band(0, 0, 15, 30, 30, 60, 45, 85, 60, 100)},
		PremierStat{Name: "pressures", Weight: 0.15, Band: band(0, 0, 10, 30, 25, 60, 40, 85, 55, 100)},
	)
	interior := newPremierScorer("interior_line",
		PremierStat{Name: "tackles_for_loss", Weight: 0.30, Band: band(0, 0, 3, 30, 6, 60, 10, 85, 14, 100)},
		PremierStat{Name: "sacks", Weight: 0.25, Band: band(0, 0, 1, 25, 3, 55, 5, 80, 7, 95, 9, 100)},
		PremierStat{Name: "tackles", Weight: 0.25, Band: band(0, 0, 15, 30, 30, 60, 45, 85, 60, 100)},
		PremierStat{Name: "pressures", Weight: 0.20, Band: band(0, 0, 8, 30, 18, 60, 30, 85, 40, 100)},
	)
	linebacker := newPremierScorer("linebacker",
		PremierStat{Name: "tackles", Weight: 0.35, Band: band(0, 0, 30, 30, 60, 60, 90, 85, 120, 100)},
		PremierStat{Name: "tackles_for_loss", Weight: 0.25, Band: band(0, 0, 3, 30, 6, 60, 10, 85, 14, 100)},
		PremierStat{Name: "sacks", Weight: 0.15, Band: band(0, 0, 1, 30, 3, 60, 5, 85, 8, 100)},
		PremierStat{Name: "pass_breakups", Weight: 0.15, Band: band(0, 0, 2, 35, 4, 65, 6, 85, 9, 100)},
		PremierStat{Name: "interceptions", Weight: 0.10, Band: band(0, 0, 1, 50, 2, 80, 4, 100)},
	)
	cover := newPremierScorer("cover",
		PremierStat{Name: "pass_breakups", Weight: 0.40, Band: band(0, 0, 4, 30, 8, 60, 12, 85, 16, 100)},
		PremierStat{Name: "interceptions", Weight: 0.35, Band: band(0, 0, 1, 30, 3, 60, 5, 85, 7, 100)},
		PremierStat{Name: "tackles", Weight: 0.25, Band: band(0, 0, 15, 30, 30, 60, 45, 85, 60, 100)},
	)
	safety := newPremierScorer("safety",
		PremierStat{Name: "tackles", Weight: 0.30, Band: band(0, 0, 20, 30, 45, 60, 70, 85, 95, 100)},
		PremierStat{Name: "interceptions", Weight: 0.30, Band: band(0, 0, 1, 30, 3, 60, 5, 85, 7, 100)},
		PremierStat{Name: "pass_breakups", Weight: 0.25, Band: band(0, 0, 3, 30, 6, 60, 9, 85, 12, 100)},
		PremierStat{Name: "tackles_for_loss", Weight: 0.15, Band: band(0, 0, 2, 35, 4, 65, 6, 85, 9, 100)},
	)
	rusher := newPremierScorer("rusher",
		PremierStat{Name: "rushing_yards", Weight: 0.40, Band: band(0, 0, 300, 25, 700, 55, 1000, 80, 1300, 95, 1600, 100)},
		PremierStat{Name: "rushing_tds", Weight: 0.25, Band: band(0, 0, 4, 30, 8, 60, 12, 85, 18, 100)},
		PremierStat{Name: "receiving_yards", Weight: 0.20, Band: band(0, 0, 100, 30, 250, 60, 400, 85, 550, 100)},
		PremierStat{Name: "receptions", Weight: 0.15, Band: band(0, 0, 10, 30, 25, 60, 40, 85, 55, 100)},
	)
	receiver := newPremierScorer("receiver",
		PremierStat{Name: "receiving_yards", Weight: 0.40, Band: band(0, 0, 300, 25, 600, 50, 900, 75, 1200, 92, 1500, 100)},
		PremierStat{Name: "receptions", Weight: 0.25, Band: band(0, 0, 20, 25, 45, 55, 70, 80, 95, 100)},
		PremierStat{Name: "receiving_tds", Weight: 0.25, Band: band(0, 0, 3, 30, 6, 60, 10, 85, 14, 100)},
		PremierStat{Name: "yards_after_catch", Weight: 0.10, Band: band(0, 0, 150, 30, 300, 60, 450, 85, 600, 100)},
	)
	tightEnd := newPremierScorer("tight_end",
		PremierStat{Name: "receiving_yards", Weight: 0.35, Band: band(0, 0, 200, 30, 450, 60, 700, 85, 900, 100)},
		PremierStat{Name: "receptions", Weight: 0.30, Band: band(0, 0, 15, 30, 35, 60, 55, 85, 70, 100)},
		PremierStat{Name: "receiving_tds", Weight: 0.20, Band: band(0, 0, 2, 30, 5, 60, 8, 85, 11, 100)},
		PremierStat{Name: "blocking_grade", Weight: 0.15, Band: band(0, 0, 50, 40, 70, 75, 85, 100)},
	)
	blocker := newPremierScorer("blocker",
		PremierStat{Name: "pass_block_grade", Weight: 0.40, Band: band(0, 0, 50, 30, 65, 60, 75, 80, 85, 95, 92, 100)},
		PremierStat{Name: "run_block_grade", Weight: 0.40, Band: band(0, 0, 50, 30, 65, 60, 75, 80, 85, 95, 92, 100)},
		PremierStat{Name: "pancakes", Weight: 0.20, Band: band(0, 0, 10, 30, 25, 60, 40, 85, 55, 100)},
	)
	passer := &passerScorer{stats: []PremierStat{
		{Name: "passing_yards", Weight: 0.25, Band: band(0, 0, 1000, 20, 2000, 45, 3000, 70, 3800, 88, 4500, 100)},
		{Name: "passing_tds", Weight: 0.30, Band: band(0, 0, 8, 20, 16, 45, 25, 70, 32, 88, 40, 100)},
		{Name: StatCompletionPct, Weight: 0.15, Band: band(0, 0, 0.50, 20, 0.58, 45, 0.64, 70, 0.68, 88, 0.72, 100)},
		{Name: StatYardsPerAttempt, Weight: 0.15, Band: band(0, 0, 5, 15, 6.5, 40, 7.5, 65, 8.5, 85, 9.5, 100)},
		{Name: "rushing_yards", Weight: 0.15, Band: band(0, 0, 200, 30, 500, 65, 800, 90, 1000, 100)},
	}}
	kicker := &kickerScorer{stats: []PremierStat{
		{Name: StatFieldGoalPct, Weight: 0.45, Band: band(0, 0, 0.60, 20, 0.75, 55, 0.85, 80, 0.92, 100)},
		{Name: "fg_made", Weight: 0.30, Band: band(0, 0, 8, 30, 15, 60, 20, 85, 25, 100)},
		{Name: "fg_made_50_plus", Weight: 0.25, Band: band(0, 0, 1, 35, 3, 70, 5, 100)},
	}}
	punter := newPremierScorer("punter",
		PremierStat{Name: "punt_avg", Weight: 0.50, Band: band(0, 0, 38, 20, 42, 50, 45, 80, 48, 100)},
		PremierStat{Name: "inside_20", Weight: 0.30, Band: band(0, 0, 10, 30, 20, 60, 30, 90, 35, 100)},
		PremierStat{Name: "net_avg", Weight: 0.20, Band: band(0, 0, 35, 20, 39, 55, 42, 85, 44, 100)},
	)

	leadGuard := newPremierScorer("lead_guard",
		PremierStat{Name: "assists", Weight: 0.35, Band: band(0, 0, 60, 25, 140, 55, 200, 80, 260, 100)},
		PremierStat{Name: "points", Weight: 0.30, Band: band(0, 0, 150, 25, 350, 55, 550, 80, 700, 100)},
		PremierStat{Name: "threes_made", Weight: 0.20, Band: band(0, 0, 20, 25, 50, 55, 80, 80, 110, 100)},
		PremierStat{Name: "steals", Weight: 0.15, Band: band(0, 0, 20, 30, 40, 60, 60, 85, 80, 100)},
	)
	scoringGuard := newPremierScorer("scoring_guard",
		PremierStat{Name: "points", Weight: 0.40, Band: band(0, 0, 150, 25, 350, 55, 550, 80, 700, 100)},
		PremierStat{Name: "threes_made", Weight: 0.25, Band: band(0, 0, 20, 25, 50, 55, 80, 80, 110, 100)},
		PremierStat{Name: "steals", Weight: 0.20, Band: band(0, 0, 20, 30, 40, 60, 60, 85, 80, 100)},
		PremierStat{Name: "assists", Weight: 0.15, Band: band(0, 0, 40, 25, 90, 55, 140, 80, 180, 100)},
	)
	wing := newPremierScorer("wing",
		PremierStat{Name: "points", Weight: 0.35, Band: band(0, 0, 150, 25, 350, 55, 550, 80, 700, 100)},
		PremierStat{Name: "rebounds", Weight: 0.25, Band: band(0, 0, 80, 25, 160, 55, 240, 80, 320, 100)},
		PremierStat{Name: "threes_made", Weight: 0.15, Band: band(0, 0, 20, 25, 50, 55, 80, 80, 110, 100)},
		PremierStat{Name: "assists", Weight: 0.15, Band: band(0, 0, 30, 25, 70, 55, 110, 80, 150, 100)},
		PremierStat{Name: "steals", Weight: 0.10, Band: band(0, 0, 20, 30, 40, 60, 60, 85, 80, 100)},
	)
	stretchBig := newPremierScorer("stretch_big",
		PremierStat{Name: "rebounds", Weight: 0.35, Band: band(0, 0, 100, 25, 200, 55, 280, 80, 360, 100)},
		PremierStat{Name: "points", Weight: 0.30, Band: band(0, 0, 150, 25, 350, 55, 550, 80, 700, 100)},
		PremierStat{Name: "blocks", Weight: 0.20, Band: band(0, 0, 10, 25, 25, 55, 45, 80, 70, 100)},
		PremierStat{Name: "offensive_rebounds", Weight: 0.15, Band: band(0, 0, 25, 30, 50, 60, 80, 85, 110, 100)},
	)
	post := newPremierScorer("post",
		PremierStat{Name: "rebounds", Weight: 0.35, Band: band(0, 0, 100, 25, 200, 55, 280, 80, 360, 100)},
		PremierStat{Name: "blocks", Weight: 0.30, Band: band(0, 0, 15, 25, 35, 55, 60, 80, 90, 100)},
		PremierStat{Name: "points", Weight: 0.25, Band: band(0, 0, 150, 25, 350, 55, 550, 80, 700, 100)},
		PremierStat{Name: "offensive_rebounds", Weight: 0.10, Band: band(0, 0, 25, 30, 50, 60, 80, 85, 110, 100)},
	)

	return map[model.Position]Scorer{
		model.QB:   passer,
		model.RB:   rusher,
		model.WR:   receiver,
		model.TE:   tightEnd,
		model.OL:   blocker,
		model.DL:   interior,
		model.EDGE: passRush,
		model.LB:   linebacker,
		model.CB:   cover,
		model.S:    safety,
		model.K:    kicker,
		model.P:    punter,
		model.PG:   leadGuard,
		model.SG:   scoringGuard,
		model.SF:   wing,
		model.PF:   stretchBig,
		model.C:    post,
	}
}
