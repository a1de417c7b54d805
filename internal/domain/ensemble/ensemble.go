// Package ensemble combines the six valuation pillars into one
// explainable value. Production, predictive, scarcity and market pillars
// are weighted per archetype; brand is a bounded additive term and risk a
// multiplicative discount.
package ensemble

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/okian/varsity/internal/domain/model"
)

// Combination constants.
const (
	eliteScarcityBump  = 1.10
	brandShare         = 0.25
	brandCap           = 0.5
	maxWidthPct        = 75.0
	neutralScore       = 50.0
	neutralOpportunity = 0.5
)

// Input is everything the combiner needs for one athlete. PlayerValue is
// the floored dollar value from WAR.
type Input struct {
	Archetype    Archetype
	Score        float64
	PlayerValue  float64
	Projection   Projection
	Scarcity     float64
	Market       float64
	NIL          float64
	Risk         Risk
	WARWidthPct  float64
	Completeness float64
	Floor        float64
}

// Result is the combined valuation before rounding into model types.
type Result struct {
	Pillars    []model.PillarContribution
	Weighted   float64
	Brand      float64
	Total      float64
	Final      float64
	Low        float64
	High       float64
	WidthPct   float64
	Deviations []Deviation
	Drivers    []string
}

// ScarcityMultiplier is the position scarcity, bumped 10% for elite WAR.
func ScarcityMultiplier(scarcity float64, tier model.Tier) float64 {
	if scarcity <= 0 {
		scarcity = 1
	}
	if tier == model.TierElite {
		return scarcity * eliteScarcityBump
	}
	return scarcity
}

// MarketMultiplier is conference × program × (0.9 + 0.2 × opportunity).
// Opportunity outside (0,1] reads as the neutral 0.5.
func MarketMultiplier(conference, program, opportunity float64) float64 {
	if conference <= 0 {
		conference = 1
	}
	if program <= 0 {
		program = 1
	}
	if opportunity <= 0 || opportunity > 1 {
		opportunity = neutralOpportunity
	}
	return conference * program * (0.9 + 0.2*opportunity)
}

// WidthPct widens the WAR confidence width for missing stats and weak
// projections, capped at 75%.
func WidthPct(warWidth, completeness, predictiveConfidence float64) float64 {
	w := warWidth *
		(1 + 0.5*(1-clamp(completeness, 0, 1))) *
		(1 + 0.3*(1-clamp(predictiveConfidence, 0, 1)))
	if w > maxWidthPct {
		return maxWidthPct
	}
	return w
}

// Combine computes pillar dollars, the weighted total, the brand term and
// the risk-discounted final value with its confidence interval.
func Combine(in Input) Result {
	a := in.Archetype
	pv := in.PlayerValue

	production := pv
	predictive := pv * in.Projection.Multiplier
	scarcity := pv * in.Scarcity
	market := pv * in.Market

	var res Result
	res.Weighted = a.Production*production + a.Predictive*predictive + a.Scarcity*scarcity + a.Market*market
	res.Brand = in.NIL * brandShare
	if limit := brandCap * res.Weighted; res.Brand > limit {
		res.Brand = limit
	}
	if res.Brand < 0 {
		res.Brand = 0
	}
	res.Total = res.Weighted + res.Brand
	discount := res.Total * in.Risk.Total
	res.Final = res.Total - discount
	if res.Final < in.Floor {
		res.Final = in.Floor
	}

	res.WidthPct = WidthPct(in.WARWidthPct, in.Completeness, in.Projection.Confidence)
	res.Low = res.Final * (1 - res.WidthPct/100)
	if res.Low < in.Floor {
		res.Low = in.Floor
	}
	res.High = res.Final * (1 + res.WidthPct/100)

	var brandDev float64
	if res.Weighted > 0 {
		brandDev = res.Brand / res.Weighted
	}
	res.Deviations = []Deviation{
		{Pillar: model.PillarProduction, Value: (in.Score - neutralScore) / neutralScore,
			Detail: fmt.Sprintf("performance score %.1f", in.Score)},
		{Pillar: model.PillarPredictive, Value: in.Projection.Multiplier - 1,
			Detail: fmt.Sprintf("projected score %.1f", in.Projection.Projected)},
		{Pillar: model.PillarScarcity, Value: in.Scarcity - 1,
			Detail: fmt.Sprintf("scarcity multiplier %.2f", in.Scarcity)},
		{Pillar: model.PillarMarket, Value: in.Market - 1,
			Detail: fmt.Sprintf("market multiplier %.2f", in.Market)},
		{Pillar: model.PillarBrand, Value: brandDev,
			Detail: fmt.Sprintf("NIL potential %s", Money(in.NIL).StringFixed(0))},
		{Pillar: model.PillarRisk, Value: -in.Risk.Total,
			Detail: fmt.Sprintf("risk discount %.1f%%", in.Risk.Total*100)},
	}
	res.Drivers = Drivers(res.Deviations)

	dev := func(name string) float64 {
		for _, d := range res.Deviations {
			if d.Pillar == name {
				return d.Value
			}
		}
		return 0
	}
	res.Pillars = []model.PillarContribution{
		pillar(model.PillarProduction, a.Production, production, dev(model.PillarProduction)),
		pillar(model.PillarPredictive, a.Predictive, predictive, dev(model.PillarPredictive)),
		pillar(model.PillarScarcity, a.Scarcity, scarcity, dev(model.PillarScarcity)),
		pillar(model.PillarMarket, a.Market, market, dev(model.PillarMarket)),
		{
			Name:         model.PillarBrand,
			Weight:       0,
			Dollar:       Money(in.NIL),
			Contribution: Money(res.Brand),
			Deviation:    round4(brandDev),
		},
		{
			Name:         model.PillarRisk,
			Weight:       0,
			Dollar:       Money(-discount),
			Contribution: Money(-discount),
			Deviation:    round4(-in.Risk.Total),
		},
	}
	return res
}

func pillar(name string, weight, dollar, deviation float64) model.PillarContribution {
	return model.PillarContribution{
		Name:         name,
		Weight:       weight,
		Dollar:       Money(dollar),
		Contribution: Money(weight * dollar),
		Deviation:    round4(deviation),
	}
}

// Money rounds a dollar amount to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
