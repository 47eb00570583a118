// Package pricecache maintains a shared, merge-only store of daily close
// prices and volumes keyed by (symbol, date). One cache is constructed per
// process and injected into every portfolio so overlapping symbol universes
// share fetched history instead of refetching it.
package pricecache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
)

const dayFormat = "2006-01-02"

// Source retrieves daily price history for one symbol. A zero start and end
// request the full available history. Implementations live at the network
// boundary (internal/yahoo); the cache never talks to the network itself.
type Source interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error)
}

// Cache is a deduplicated per-symbol daily price store. All mutations are
// serialized under a single mutex; a merge is atomic with respect to
// readers, so two concurrent refresh cycles can never interleave within one
// merge. Existing values always win over newly fetched ones on overlapping
// keys, which makes merging idempotent and commutative.
type Cache struct {
	mu     sync.Mutex
	source Source

	// entries maps symbol -> day key -> price point.
	entries map[string]map[string]model.PricePoint
	maxDay  string
}

// New creates an empty cache backed by the given price source.
func New(source Source) *Cache {
	return &Cache{
		source:  source,
		entries: make(map[string]map[string]model.PricePoint),
	}
}

// Missing reports which of the given symbols need a fetch: symbols with no
// cached data at all, plus symbols that lack a value on the most recent
// cached date (a partially stale multi-symbol table). The returned maxDay is
// the latest date for which any price exists; ok is false when the cache is
// empty.
func (c *Cache) Missing(symbols []string) (missing []string, maxDay time.Time, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxDay == "" {
		return append([]string(nil), symbols...), time.Time{}, false
	}

	for _, sym := range symbols {
		days, exists := c.entries[sym]
		if !exists {
			missing = append(missing, sym)
			continue
		}
		if _, onMax := days[c.maxDay]; !onMax {
			missing = append(missing, sym)
		}
	}
	sort.Strings(missing)

	maxDay, _ = time.Parse(dayFormat, c.maxDay)
	return missing, maxDay, true
}

// FetchAndMerge retrieves history for the given symbols over [start, end]
// from the source and merges it in. Per-symbol fetches run concurrently; the
// merge itself happens once, under the lock, after every fetch succeeded. A
// zero start/end requests full history. Any fetch failure fails the whole
// operation and leaves the cache untouched.
func (c *Cache) FetchAndMerge(ctx context.Context, symbols []string, start, end time.Time) error {
	if len(symbols) == 0 {
		return nil
	}

	fetched := make([][]model.PricePoint, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	for i, sym := range symbols {
		g.Go(func() error {
			points, err := c.source.Fetch(gctx, sym, start, end)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", sym, err)
			}
			fetched[i] = points
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, points := range fetched {
		c.merge(points)
	}
	return nil
}

// Refresh applies the cache refresh policy for a portfolio's symbol set:
// full-history fetch for symbols wholly absent or stale on the latest cached
// date, then a gap fetch for ALL cached symbols when the cache's max date is
// older than today. The gap refetch covers every symbol, not just missing
// ones, because price-history endpoints return contiguous ranges per symbol.
func (c *Cache) Refresh(ctx context.Context, symbols []string, today time.Time) error {
	missing, maxDay, ok := c.Missing(symbols)

	if len(missing) > 0 {
		if err := c.FetchAndMerge(ctx, missing, time.Time{}, time.Time{}); err != nil {
			return err
		}
	}

	if !ok {
		return nil
	}

	if maxDay.Format(dayFormat) < today.Format(dayFormat) {
		if err := c.FetchAndMerge(ctx, c.CachedSymbols(), maxDay, today); err != nil {
			return err
		}
	}
	return nil
}

// CurrentPrice returns the most recent close at or before asOf for symbol.
// Fails with ErrMissingPriceCache when the cache is empty and
// ErrPriceNotFound when the symbol has no entry at or before asOf.
func (c *Cache) CurrentPrice(symbol string, asOf time.Time) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxDay == "" {
		return 0, apperrors.ErrMissingPriceCache
	}

	days, exists := c.entries[symbol]
	if !exists {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrPriceNotFound, symbol)
	}

	asOfKey := asOf.UTC().Format(dayFormat)
	best := ""
	for day := range days {
		if day <= asOfKey && day > best {
			best = day
		}
	}
	if best == "" {
		return 0, fmt.Errorf("%w: %s as of %s", apperrors.ErrPriceNotFound, symbol, asOfKey)
	}
	return days[best].Close, nil
}

// Load merges pre-existing price points into the cache, typically the
// persisted warm copy at startup. Existing in-memory values win, as with any
// merge.
func (c *Cache) Load(points []model.PricePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.merge(points)
}

// MergeFrom merges another cache's contents into this one. This cache's
// existing values win on overlapping keys.
func (c *Cache) MergeFrom(other *Cache) {
	if other == nil || other == c {
		return
	}
	points := other.All()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.merge(points)
}

// All returns every cached price point, sorted by symbol then date. Used to
// persist the cache and to merge caches.
func (c *Cache) All() []model.PricePoint {
	c.mu.Lock()
	defer c.mu.Unlock()

	var points []model.PricePoint
	for _, days := range c.entries {
		for _, p := range days {
			points = append(points, p)
		}
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Symbol != points[j].Symbol {
			return points[i].Symbol < points[j].Symbol
		}
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// CachedSymbols returns the sorted set of symbols with any cached data.
func (c *Cache) CachedSymbols() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	symbols := make([]string, 0, len(c.entries))
	for sym := range c.entries {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

// Len returns the number of cached (symbol, date) price points.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, days := range c.entries {
		n += len(days)
	}
	return n
}

// merge folds points into the store. Caller must hold c.mu. Existing keys
// are left untouched; identical incoming rows are therefore dropped rather
// than duplicated.
func (c *Cache) merge(points []model.PricePoint) {
	for _, p := range points {
		if p.Symbol == "" {
			continue
		}
		day := p.Date.UTC().Format(dayFormat)
		days, exists := c.entries[p.Symbol]
		if !exists {
			days = make(map[string]model.PricePoint)
			c.entries[p.Symbol] = days
		}
		if _, taken := days[day]; taken {
			continue
		}
		p.Date, _ = time.Parse(dayFormat, day)
		days[day] = p
		if day > c.maxDay {
			c.maxDay = day
		}
	}
}
