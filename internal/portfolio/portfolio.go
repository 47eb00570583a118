// Package portfolio owns a standardized transaction ledger and an as-of
// date, and orchestrates the lot processor, price cache, and snapshot
// builder into a queryable portfolio view.
package portfolio

import (
	"context"
	"time"

	"github.com/lotledger/lotledger/internal/lots"
	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/pricecache"
	"github.com/lotledger/lotledger/internal/snapshot"
)

// Portfolio is an immutable view over a transaction ledger evaluated at a
// fixed as-of date. Construction runs the full pipeline (lot processing,
// price refresh, snapshot build); any stage failure aborts construction so
// a partially-initialized portfolio never escapes.
type Portfolio struct {
	transactions []model.Transaction
	asOf         time.Time
	cache        *pricecache.Cache
	lots         *lots.Result
	now          func() time.Time
}

// Option configures portfolio construction.
type Option func(*Portfolio)

// WithAsOf evaluates the portfolio as of the given date instead of now. The
// date may be historical but must not precede any transaction date.
func WithAsOf(asOf time.Time) Option {
	return func(p *Portfolio) { p.asOf = asOf }
}

// WithNow overrides the clock used for the default as-of date and the price
// refresh policy. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(p *Portfolio) { p.now = now }
}

// New builds a portfolio from a standardized transaction ledger and a shared
// price cache. The ledger is copied; the cache is shared and refreshed for
// the ledger's symbols as a side effect visible to every portfolio holding
// the same cache.
func New(ctx context.Context, transactions []model.Transaction, cache *pricecache.Cache, opts ...Option) (*Portfolio, error) {
	p := &Portfolio{
		transactions: append([]model.Transaction(nil), transactions...),
		cache:        cache,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.asOf.IsZero() {
		p.asOf = p.now()
	}

	result, err := lots.Process(p.transactions, p.asOf)
	if err != nil {
		return nil, err
	}
	p.lots = result

	if err := p.cache.Refresh(ctx, result.Symbols, p.now()); err != nil {
		return nil, err
	}

	// Prove every held symbol is priceable before the portfolio escapes.
	if _, err := snapshot.Build(result.Derived, p.cache, p.asOf); err != nil {
		return nil, err
	}

	return p, nil
}

// Combine builds a new portfolio over the concatenation of this ledger and
// another's. Neither source portfolio is mutated and duplicate ledger rows
// are deliberately not removed; deduplication is the caller's
// responsibility. The as-of date resolves to the earlier of the two unless
// overridden, and the other portfolio's price cache is merged into this
// one's before the pipeline re-runs.
func (p *Portfolio) Combine(ctx context.Context, other *Portfolio, opts ...Option) (*Portfolio, error) {
	merged := make([]model.Transaction, 0, len(p.transactions)+len(other.transactions))
	merged = append(merged, p.transactions...)
	merged = append(merged, other.transactions...)

	asOf := p.asOf
	if other.asOf.Before(asOf) {
		asOf = other.asOf
	}

	p.cache.MergeFrom(other.cache)

	combined := append([]Option{WithNow(p.now), WithAsOf(asOf)}, opts...)
	return New(ctx, merged, p.cache, combined...)
}

// Snapshot returns the public position table: per-symbol aggregates joined
// with current prices, rounded to two decimals, closed and dust positions
// (|shares| < 1) filtered out. It is recomputed on every call from current
// state, never cached.
func (p *Portfolio) Snapshot() ([]model.Position, error) {
	full, err := p.FullSnapshot()
	if err != nil {
		return nil, err
	}
	return snapshot.Display(full), nil
}

// FullSnapshot returns the unfiltered position table rounded to four
// decimals, including closed positions.
func (p *Portfolio) FullSnapshot() ([]model.Position, error) {
	return snapshot.Build(p.lots.Derived, p.cache, p.asOf)
}

// UpcomingLTCGLots returns the short-term lots projected to cross the
// long-term capital-gains threshold within the given number of days: those
// with holding_period_days strictly greater than threshold - withinDays.
// Only lots of symbols with an open position are returned. The filter
// restricts results to a single symbol or a set of symbols; any other
// filter shape fails with ErrUnsupportedSymbolFilter.
func (p *Portfolio) UpcomingLTCGLots(withinDays int, filter SymbolFilter) ([]model.DerivedTransaction, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	cutoff := lots.LongTermThresholdDays - float64(withinDays)
	active := p.lots.ActiveSymbols()

	var upcoming []model.DerivedTransaction
	for _, lot := range p.lots.ShortTerm {
		if float64(lot.HoldingPeriodDays) <= cutoff {
			continue
		}
		if !filter.matches(lot.Symbol) {
			continue
		}
		if !active[lot.Symbol] {
			continue
		}
		upcoming = append(upcoming, lot)
	}
	return upcoming, nil
}

// Transactions returns a copy of the ledger in (symbol, date) order with
// derived fields populated.
func (p *Portfolio) Transactions() []model.DerivedTransaction {
	return append([]model.DerivedTransaction(nil), p.lots.Derived...)
}

// Symbols returns the sorted distinct symbols in the ledger.
func (p *Portfolio) Symbols() []string {
	return append([]string(nil), p.lots.Symbols...)
}

// AsOf returns the date the portfolio is evaluated against.
func (p *Portfolio) AsOf() time.Time {
	return p.asOf
}
