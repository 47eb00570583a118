package portfolio_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/portfolio"
	"github.com/lotledger/lotledger/internal/pricecache"
	"github.com/lotledger/lotledger/internal/testutil"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestNew_Pipeline tests that construction runs lot processing, price
// refresh, and the snapshot build end to end.
func TestNew_Pipeline(t *testing.T) {
	bought := testutil.Day(2024, time.January, 2)
	today := bought.AddDate(0, 0, 400)

	t.Run("builds and prices a simple ledger", func(t *testing.T) {
		source := testutil.NewStaticSource(testutil.Price("ABC", today, 120, 0))
		cache := pricecache.New(source)

		p, err := portfolio.New(context.Background(),
			[]model.Transaction{testutil.Buy("taxable", "ABC", bought, 10, 100)},
			cache,
			portfolio.WithNow(fixedClock(today)),
		)
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}

		if !p.AsOf().Equal(today) {
			t.Errorf("Expected default as-of %v, got %v", today, p.AsOf())
		}
		positions, err := p.Snapshot()
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}
		if len(positions) != 1 || positions[0].MarketValue != 1200 {
			t.Errorf("Expected one ABC position worth 1200, got %+v", positions)
		}
		// Construction refreshed the shared cache for the ledger's symbols.
		if len(source.Calls()) == 0 {
			t.Error("Expected construction to fetch prices for the ledger symbols")
		}
	})

	t.Run("fails when a held symbol cannot be priced", func(t *testing.T) {
		cache := pricecache.New(testutil.NewStaticSource())
		cache.Load([]model.PricePoint{testutil.Price("OTHER", today, 5, 0)})

		_, err := portfolio.New(context.Background(),
			[]model.Transaction{testutil.Buy("taxable", "ABC", bought, 10, 100)},
			cache,
			portfolio.WithNow(fixedClock(today)),
			portfolio.WithAsOf(today),
		)
		if !errors.Is(err, apperrors.ErrPriceNotFound) {
			t.Fatalf("Expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("fails on an empty ledger", func(t *testing.T) {
		cache := pricecache.New(testutil.NewStaticSource())

		_, err := portfolio.New(context.Background(), nil, cache,
			portfolio.WithNow(fixedClock(today)))
		if !errors.Is(err, apperrors.ErrNoTransactions) {
			t.Fatalf("Expected ErrNoTransactions, got %v", err)
		}
	})

	t.Run("fails when as-of precedes a transaction", func(t *testing.T) {
		cache := pricecache.New(testutil.NewStaticSource())

		_, err := portfolio.New(context.Background(),
			[]model.Transaction{testutil.Buy("taxable", "ABC", bought, 10, 100)},
			cache,
			portfolio.WithNow(fixedClock(today)),
			portfolio.WithAsOf(bought.AddDate(0, 0, -1)),
		)
		if !errors.Is(err, apperrors.ErrInvalidAsOfDate) {
			t.Fatalf("Expected ErrInvalidAsOfDate, got %v", err)
		}
	})
}

// TestSnapshot_Recomputed tests that repeated snapshots of an unchanged
// portfolio agree.
//
// WHY: Snapshot() recomputes from current state on every call; with a stable
// cache the result must be deterministic.
func TestSnapshot_Recomputed(t *testing.T) {
	bought := testutil.Day(2024, time.January, 2)
	today := bought.AddDate(0, 0, 100)

	cache := pricecache.New(testutil.NewStaticSource(testutil.Price("ABC", today, 50, 0)))
	p, err := portfolio.New(context.Background(),
		[]model.Transaction{testutil.Buy("taxable", "ABC", bought, 10, 40)},
		cache,
		portfolio.WithNow(fixedClock(today)),
	)
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}

	first, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() returned unexpected error: %v", err)
	}
	second, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() returned unexpected error: %v", err)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Errorf("Expected identical snapshots, got %+v vs %+v", first, second)
	}
}

// TestCombine tests ledger concatenation semantics.
func TestCombine(t *testing.T) {
	boughtA := testutil.Day(2024, time.January, 2)
	boughtB := testutil.Day(2024, time.June, 2)
	today := testutil.Day(2025, time.March, 1)

	newPortfolio := func(t *testing.T, txns []model.Transaction, points ...model.PricePoint) *portfolio.Portfolio {
		t.Helper()
		cache := pricecache.New(testutil.NewStaticSource(points...))
		p, err := portfolio.New(context.Background(), txns, cache,
			portfolio.WithNow(fixedClock(today)), portfolio.WithAsOf(today))
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		return p
	}

	t.Run("concatenates ledgers and merges caches", func(t *testing.T) {
		a := newPortfolio(t,
			[]model.Transaction{testutil.Buy("taxable", "ABC", boughtA, 10, 100)},
			testutil.Price("ABC", today, 120, 0))
		b := newPortfolio(t,
			[]model.Transaction{testutil.Buy("ira", "DEF", boughtB, 5, 20)},
			testutil.Price("DEF", today, 25, 0))

		combined, err := a.Combine(context.Background(), b)
		if err != nil {
			t.Fatalf("Combine() returned unexpected error: %v", err)
		}

		symbols := combined.Symbols()
		if len(symbols) != 2 || symbols[0] != "ABC" || symbols[1] != "DEF" {
			t.Errorf("Expected combined symbols [ABC DEF], got %v", symbols)
		}
		if got := len(combined.Transactions()); got != 2 {
			t.Errorf("Expected 2 combined transactions, got %d", got)
		}
		// Source portfolios keep their own ledgers.
		if got := len(a.Transactions()); got != 1 {
			t.Errorf("Expected source portfolio to keep 1 transaction, got %d", got)
		}
		if got := len(b.Transactions()); got != 1 {
			t.Errorf("Expected source portfolio to keep 1 transaction, got %d", got)
		}
	})

	t.Run("keeps duplicate rows from both ledgers", func(t *testing.T) {
		// Combining a portfolio with itself doubles every lot; dedup is the
		// caller's job.
		a := newPortfolio(t,
			[]model.Transaction{testutil.Buy("taxable", "ABC", boughtA, 10, 100)},
			testutil.Price("ABC", today, 120, 0))

		combined, err := a.Combine(context.Background(), a)
		if err != nil {
			t.Fatalf("Combine() returned unexpected error: %v", err)
		}
		positions, err := combined.Snapshot()
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}
		if positions[0].NumShares != 20 {
			t.Errorf("Expected 20 shares after self-combine, got %v", positions[0].NumShares)
		}
	})

	t.Run("as-of resolves to the earlier portfolio's date", func(t *testing.T) {
		earlier := testutil.Day(2024, time.July, 1)

		a := newPortfolio(t,
			[]model.Transaction{testutil.Buy("taxable", "ABC", boughtA, 10, 100)},
			testutil.Price("ABC", today, 120, 0), testutil.Price("ABC", earlier, 110, 0))
		bCache := pricecache.New(testutil.NewStaticSource(
			testutil.Price("DEF", today, 25, 0), testutil.Price("DEF", earlier, 22, 0)))
		b, err := portfolio.New(context.Background(),
			[]model.Transaction{testutil.Buy("ira", "DEF", boughtB, 5, 20)},
			bCache,
			portfolio.WithNow(fixedClock(today)), portfolio.WithAsOf(earlier))
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}

		combined, err := a.Combine(context.Background(), b)
		if err != nil {
			t.Fatalf("Combine() returned unexpected error: %v", err)
		}
		if !combined.AsOf().Equal(earlier) {
			t.Errorf("Expected combined as-of %v, got %v", earlier, combined.AsOf())
		}
	})
}

// TestUpcomingLTCGLots tests the projection of short-term lots toward the
// long-term threshold.
//
// WHY: A lot becomes long-term after strictly more than 365.25 days, so
// "within 7 days" means holding_period_days strictly above 358.25: 359 is
// in, 358 is out.
func TestUpcomingLTCGLots(t *testing.T) {
	today := testutil.Day(2025, time.March, 1)

	newPortfolio := func(t *testing.T, txns []model.Transaction, points ...model.PricePoint) *portfolio.Portfolio {
		t.Helper()
		cache := pricecache.New(testutil.NewStaticSource(points...))
		p, err := portfolio.New(context.Background(), txns, cache,
			portfolio.WithNow(fixedClock(today)), portfolio.WithAsOf(today))
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		return p
	}

	t.Run("boundary at the projected threshold", func(t *testing.T) {
		p := newPortfolio(t,
			[]model.Transaction{
				testutil.Buy("taxable", "IN", today.AddDate(0, 0, -359), 10, 10),
				testutil.Buy("taxable", "OUT", today.AddDate(0, 0, -358), 10, 10),
				testutil.Buy("taxable", "DONE", today.AddDate(0, 0, -400), 10, 10),
			},
			testutil.Price("IN", today, 11, 0),
			testutil.Price("OUT", today, 11, 0),
			testutil.Price("DONE", today, 11, 0),
		)

		upcoming, err := p.UpcomingLTCGLots(7, portfolio.NoFilter())
		if err != nil {
			t.Fatalf("UpcomingLTCGLots() returned unexpected error: %v", err)
		}
		if len(upcoming) != 1 {
			t.Fatalf("Expected exactly 1 upcoming lot, got %d", len(upcoming))
		}
		// 359 days qualifies, 358 does not, and the 400-day lot is already
		// long-term.
		if upcoming[0].Symbol != "IN" {
			t.Errorf("Expected upcoming lot IN, got %s", upcoming[0].Symbol)
		}
	})

	t.Run("excludes lots of closed positions", func(t *testing.T) {
		p := newPortfolio(t,
			[]model.Transaction{
				testutil.Buy("taxable", "GONE", today.AddDate(0, 0, -360), 10, 10),
				testutil.Sell("taxable", "GONE", today.AddDate(0, 0, -30), 10, 12),
				testutil.Buy("taxable", "HELD", today.AddDate(0, 0, -360), 10, 10),
			},
			testutil.Price("GONE", today, 11, 0),
			testutil.Price("HELD", today, 11, 0),
		)

		upcoming, err := p.UpcomingLTCGLots(7, portfolio.NoFilter())
		if err != nil {
			t.Fatalf("UpcomingLTCGLots() returned unexpected error: %v", err)
		}
		if len(upcoming) != 1 || upcoming[0].Symbol != "HELD" {
			t.Errorf("Expected only HELD, got %+v", upcoming)
		}
	})

	t.Run("single-symbol and set filters", func(t *testing.T) {
		p := newPortfolio(t,
			[]model.Transaction{
				testutil.Buy("taxable", "ABC", today.AddDate(0, 0, -360), 10, 10),
				testutil.Buy("taxable", "DEF", today.AddDate(0, 0, -360), 10, 10),
				testutil.Buy("taxable", "GHI", today.AddDate(0, 0, -360), 10, 10),
			},
			testutil.Price("ABC", today, 11, 0),
			testutil.Price("DEF", today, 11, 0),
			testutil.Price("GHI", today, 11, 0),
		)

		single, err := p.UpcomingLTCGLots(7, portfolio.FilterSymbol("DEF"))
		if err != nil {
			t.Fatalf("UpcomingLTCGLots() returned unexpected error: %v", err)
		}
		if len(single) != 1 || single[0].Symbol != "DEF" {
			t.Errorf("Expected only DEF, got %+v", single)
		}

		many, err := p.UpcomingLTCGLots(7, portfolio.FilterSymbols([]string{"ABC", "GHI"}))
		if err != nil {
			t.Fatalf("UpcomingLTCGLots() returned unexpected error: %v", err)
		}
		if len(many) != 2 {
			t.Fatalf("Expected 2 lots for the set filter, got %d", len(many))
		}
	})
}
