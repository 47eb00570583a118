// Package snapshot aggregates derived transactions into per-symbol positions
// and joins them with current prices to produce the point-in-time valuation
// view of a portfolio.
package snapshot

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lotledger/lotledger/internal/model"
)

// PriceLookup resolves a symbol's most recent close at or before a date.
// Satisfied by *pricecache.Cache.
type PriceLookup interface {
	CurrentPrice(symbol string, asOf time.Time) (float64, error)
}

// costBasisEpsilon guards the ratio fields against division by a cost basis
// that is zero or numerically indistinguishable from it (e.g. a position
// built entirely from transfers).
const costBasisEpsilon = 1e-9

// Build aggregates derived transactions by symbol and joins each symbol's
// current price to produce the full position snapshot, sorted by symbol and
// rounded to four decimal places. The rounding is presentation-only; nothing
// downstream computes from the rounded values.
//
// A held symbol with no price at or before asOf fails the build with the
// price cache's ErrPriceNotFound.
func Build(derived []model.DerivedTransaction, prices PriceLookup, asOf time.Time) ([]model.Position, error) {
	bySymbol := make(map[string]*model.Position)
	for _, d := range derived {
		p, ok := bySymbol[d.Symbol]
		if !ok {
			p = &model.Position{Symbol: d.Symbol}
			bySymbol[d.Symbol] = p
		}
		p.NumShares += d.Quantity
		p.CostBasis += d.Amount
		p.WtdHoldingDays += d.AmountHoldingPeriodDays
		p.LTCGShares += d.LTCGShares
		p.LTCGCost += d.LTCGCost
	}

	positions := make([]model.Position, 0, len(bySymbol))
	for _, p := range bySymbol {
		price, err := prices.CurrentPrice(p.Symbol, asOf)
		if err != nil {
			return nil, fmt.Errorf("snapshot for %s: %w", p.Symbol, err)
		}
		p.CurrentPrice = price
		p.MarketValue = p.NumShares * price
		p.Gain = p.CostBasis + p.MarketValue
		// wtd_holding_days is reported sign-flipped so a net-purchased
		// position (negative cash flow) shows positive weighted days.
		p.WtdHoldingDays = -p.WtdHoldingDays
		if math.Abs(p.CostBasis) > costBasisEpsilon {
			p.GainPerc = -(p.Gain / p.CostBasis)
			p.WtdAvgHoldingPeriodDays = -(p.WtdHoldingDays / p.CostBasis)
		}
		positions = append(positions, roundPosition(*p, 4))
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})
	return positions, nil
}

// Display reduces a full snapshot to the public view: two decimal places,
// positions with fewer than one share in absolute terms dropped.
func Display(positions []model.Position) []model.Position {
	display := make([]model.Position, 0, len(positions))
	for _, p := range positions {
		if math.Abs(p.NumShares) < 1 {
			continue
		}
		display = append(display, roundPosition(p, 2))
	}
	return display
}

func roundPosition(p model.Position, places int) model.Position {
	p.NumShares = roundTo(p.NumShares, places)
	p.CostBasis = roundTo(p.CostBasis, places)
	p.WtdHoldingDays = roundTo(p.WtdHoldingDays, places)
	p.LTCGShares = roundTo(p.LTCGShares, places)
	p.LTCGCost = roundTo(p.LTCGCost, places)
	p.CurrentPrice = roundTo(p.CurrentPrice, places)
	p.MarketValue = roundTo(p.MarketValue, places)
	p.Gain = roundTo(p.Gain, places)
	p.GainPerc = roundTo(p.GainPerc, places)
	p.WtdAvgHoldingPeriodDays = roundTo(p.WtdAvgHoldingPeriodDays, places)
	return p
}

func roundTo(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}
