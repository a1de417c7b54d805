// Package valuation runs the full pipeline for one athlete-season:
// performance score, context, WAR, dollar value, NIL potential and the
// six-pillar ensemble. The engine is read-only after construction; all
// methods are safe for concurrent use and deterministic for identical
// inputs.
package valuation

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/varsity/internal/domain/adjust"
	"github.com/okian/varsity/internal/domain/brand"
	"github.com/okian/varsity/internal/domain/dollar"
	"github.com/okian/varsity/internal/domain/ensemble"
	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/performance"
	"github.com/okian/varsity/internal/domain/reference"
	"github.com/okian/varsity/internal/domain/war"
	"github.com/okian/varsity/pkg/logger"
)

// Engine computes WAR and valuations.
type Engine struct {
	catalog    *reference.Catalog
	registry   *performance.Registry
	archetypes *ensemble.Set
	calc       *war.Calculator
	leverage   adjust.LeverageSource
	log        logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for warnings.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithLeverageSource replaces the season-aggregate leverage approximation.
func WithLeverageSource(src adjust.LeverageSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.leverage = src
		}
	}
}

// WithCalculator replaces the WAR calculator.
func WithCalculator(c *war.Calculator) Option {
	return func(e *Engine) {
		if c != nil {
			e.calc = c
		}
	}
}

// New creates an Engine. Nil registry or archetypes use the defaults.
func New(catalog *reference.Catalog, registry *performance.Registry, archetypes *ensemble.Set, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: reference catalog is nil", ErrConfigurationMissing)
	}
	if registry == nil {
		registry = performance.MustRegistry()
	}
	if archetypes == nil {
		set, err := ensemble.NewSet(ensemble.Balanced)
		if err != nil {
			return nil, err
		}
		archetypes = set
	}
	e := &Engine{
		catalog:    catalog,
		registry:   registry,
		archetypes: archetypes,
		calc:       war.New(),
		leverage:   adjust.SeasonLeverage{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Archetypes returns the archetype set.
func (e *Engine) Archetypes() *ensemble.Set { return e.archetypes }

// pass holds the intermediate products shared by WAR and Value.
type pass struct {
	data     *reference.Data
	sport    model.Sport
	position model.Position
	entry    reference.PositionEntry
	limits   reference.SportLimits
	record   model.SeasonStatRecord
	score    performance.Result
	conf     float64
	war      model.WARResult
	warnings []string
}

func (p *pass) warn(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

// WAR computes the wins-above-replacement result only.
func (e *Engine) WAR(ctx context.Context, req Request) (model.WARResult, error) {
	p, err := e.run(ctx, req)
	if err != nil {
		return model.WARResult{}, err
	}
	res := p.war
	res.Warnings = p.warnings
	return res, nil
}

func (e *Engine) run(ctx context.Context, req Request) (*pass, error) {
	id := req.Athlete.ID
	if err := ctx.Err(); err != nil {
		return nil, newError(id, ErrCanceled, fmt.Errorf("%w: %v", ErrCanceled, err))
	}
	if err := req.Validate(); err != nil {
		return nil, newError(id, ErrInvalidRequest, err)
	}

	p := &pass{sport: req.Sport()}
	p.data = e.catalog.For(req.Record.Season)

	pos, known := model.ResolvePosition(p.sport, req.Athlete.PositionTag)
	p.position = pos
	if !known {
		p.warn("undefined position %q for %s: neutral performance score", req.Athlete.PositionTag, p.sport)
		e.log.Warn(ctx, "undefined position",
			logger.String("athlete_id", id),
			logger.String("position", req.Athlete.PositionTag),
			logger.String("sport", string(p.sport)))
	}

	entry, err := p.data.Position(pos)
	if err != nil {
		e.log.Error(ctx, "reference data missing", logger.String("athlete_id", id), logger.Error(err))
		return nil, newError(id, ErrConfigurationMissing, err)
	}
	p.entry = entry
	limits, err := p.data.Limits(p.sport)
	if err != nil {
		e.log.Error(ctx, "reference data missing", logger.String("athlete_id", id), logger.Error(err))
		return nil, newError(id, ErrConfigurationMissing, err)
	}
	p.limits = limits

	p.record = e.clampRecord(ctx, p, req.Record, id)
	p.record.AthleteID = id
	p.record.Sport = p.sport

	conf, found := p.data.ConferenceMultiplier(req.Team.Conference)
	if !found && req.Team.Conference != "" {
		p.warn("unknown conference %q: default multiplier %.2f", req.Team.Conference, conf)
	}
	p.conf = conf

	p.score = e.registry.Score(pos, p.record, conf)
	if len(p.score.Missing) > 0 && !p.score.Neutral {
		p.warn("missing stats scored as zero: %v", p.score.Missing)
	}

	snapShare := p.record.Snaps / limits.ExpectedSnaps
	adj := adjust.New(p.data, e.leverage)
	if req.Market.LeverageOverride != nil {
		adj = adj.WithLeverage(adjust.FixedLeverage(*req.Market.LeverageOverride))
		if v := *req.Market.LeverageOverride; v < adjust.MinLeverage || v > adjust.MaxLeverage {
			p.warn("leverage override %.2f clamped to [%.1f,%.1f]", v, adjust.MinLeverage, adjust.MaxLeverage)
		}
	}
	if req.Team.WinPct == nil {
		p.warn("team win pct not supplied: neutral team adjustment")
	}
	if req.Team.OpponentAvgWinPct == nil {
		p.warn("opponent win pct not supplied: neutral opponent quality")
	}
	factors := adj.Factors(adjust.LeverageInput{
		SnapShare:   snapShare,
		StarterRate: p.record.StarterRate(),
		HasSnaps:    p.record.Snaps > 0,
	}, req.Team)

	p.war = e.calc.Calculate(war.Input{
		AthleteID:   id,
		Season:      p.record.Season,
		Position:    pos,
		Score:       p.score.Score,
		Baseline:    entry.Baseline,
		Impact:      entry.Impact,
		SnapShare:   snapShare,
		StarterRate: p.record.StarterRate(),
		Context:     factors,
	})
	p.warnings = append(p.warnings, p.war.Warnings...)
	return p, nil
}

// clampRecord forces counts into the sport's season limits, warning for
// each violation.
func (e *Engine) clampRecord(ctx context.Context, p *pass, rec model.SeasonStatRecord, id string) model.SeasonStatRecord {
	limits := model.Limits{MaxGames: p.limits.MaxGames, MaxSnaps: p.limits.MaxSnaps}
	violations := rec.Violations(limits)
	if len(violations) == 0 {
		return rec
	}
	for _, v := range violations {
		p.warn("clamped: %s", v)
	}
	e.log.Warn(ctx, "season record clamped", logger.String("athlete_id", id), logger.Strings("violations", violations))
	return rec.Clamped(limits)
}

// Value computes the full valuation. RunID and ComputedAt are left for the
// caller to stamp so the result stays a pure function of the request.
func (e *Engine) Value(ctx context.Context, req Request) (model.Valuation, error) {
	p, err := e.run(ctx, req)
	if err != nil {
		return model.Valuation{}, err
	}
	id := req.Athlete.ID

	arch, ok := e.archetypes.Resolve(req.Archetype)
	if !ok {
		p.warn("unknown archetype %q: using %s", req.Archetype, arch.Name)
		e.log.Warn(ctx, "unknown archetype", logger.String("athlete_id", id), logger.String("archetype", req.Archetype))
	}

	if m := req.Market.SchemeFit; m != 0 && m != dollar.SchemeFit(m) {
		p.warn("scheme fit %.2f clamped to %.2f", m, dollar.SchemeFit(m))
	}
	if m := req.Market.RiskAdjustment; m != 0 && m != dollar.RiskAdjustment(m) {
		p.warn("risk adjustment %.2f clamped to %.2f", m, dollar.RiskAdjustment(m))
	}
	conv := dollar.New(dollar.WithFloor(p.data.ValueFloor))
	playerValue := conv.Convert(p.war.WAR, p.entry.MarketRate, req.Market.SchemeFit, req.Market.RiskAdjustment)

	exposure := p.data.ExposureMultiplier(req.Team.Exposure)
	nilEst := brand.New(p.data.NILBaseRate, p.data.NILFloor).Estimate(req.Brand, exposure, p.entry.Visibility)

	history, scores := e.scoreHistory(p, req)
	mean := p.entry.MeanScore
	if mean <= 0 {
		mean = performance.NeutralScore
	}
	projection := ensemble.Project(
		ensemble.SeasonScore{Season: p.record.Season, Score: p.score.Score, Games: p.record.GamesPlayed},
		history, mean, req.Athlete.Class,
	)
	risk := ensemble.CombineRisk(req.Risk, scores)

	res := ensemble.Combine(ensemble.Input{
		Archetype:    arch,
		Score:        p.score.Score,
		PlayerValue:  playerValue,
		Projection:   projection,
		Scarcity:     ensemble.ScarcityMultiplier(p.entry.Scarcity, p.war.Tier),
		Market:       ensemble.MarketMultiplier(p.war.Context.ConferenceMultiplier, exposure, req.Market.Opportunity),
		NIL:          nilEst.Value,
		Risk:         risk,
		WARWidthPct:  p.war.ConfidenceWidth,
		Completeness: completeness(p.score),
		Floor:        conv.Floor(),
	})

	warRes := p.war
	warRes.Warnings = nil
	v := model.Valuation{
		AthleteID:        id,
		Season:           p.record.Season,
		Sport:            p.sport,
		Position:         p.position,
		Archetype:        arch.Name,
		ReferenceVersion: p.data.Version,
		WAR:              warRes,
		PlayerValue:      ensemble.Money(playerValue),
		NILPotential:     ensemble.Money(nilEst.Value),
		CombinedValue:    ensemble.Money(res.Final),
		RiskDiscount:     round4(risk.Total),
		ConfidenceLow:    ensemble.Money(res.Low),
		ConfidenceHigh:   ensemble.Money(res.High),
		Pillars:          res.Pillars,
		Drivers:          res.Drivers,
		Warnings:         p.warnings,
	}
	return v, nil
}

// scoreHistory scores earlier seasons with the same scorer and conference.
// The returned scores include the current season.
func (e *Engine) scoreHistory(p *pass, req Request) ([]ensemble.SeasonScore, []float64) {
	limits := model.Limits{MaxGames: p.limits.MaxGames, MaxSnaps: p.limits.MaxSnaps}
	out := make([]ensemble.SeasonScore, 0, len(req.History))
	scores := make([]float64, 0, len(req.History)+1)
	for _, h := range req.History {
		if h.Season == p.record.Season || (h.AthleteID != "" && h.AthleteID != req.Athlete.ID) {
			continue
		}
		rec := h.Clamped(limits)
		s := e.registry.Score(p.position, rec, p.conf)
		out = append(out, ensemble.SeasonScore{Season: rec.Season, Score: s.Score, Games: rec.GamesPlayed})
		scores = append(scores, s.Score)
	}
	scores = append(scores, p.score.Score)
	return out, scores
}

// completeness treats a neutral score as fully uncertain.
func completeness(r performance.Result) float64 {
	if r.Neutral {
		return 0
	}
	return r.Completeness
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
