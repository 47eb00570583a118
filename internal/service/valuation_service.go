package service

import (
	"context"
	"time"

	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/portfolio"
	"github.com/lotledger/lotledger/internal/pricecache"
	"github.com/lotledger/lotledger/internal/repository"
)

// ValuationService builds point-in-time portfolio views from the persisted
// ledger and the process-wide price cache.
type ValuationService struct {
	ledgerRepo *repository.LedgerRepository
	cache      *pricecache.Cache
}

// NewValuationService creates a new ValuationService with the provided
// repository and shared price cache.
func NewValuationService(ledgerRepo *repository.LedgerRepository, cache *pricecache.Cache) *ValuationService {
	return &ValuationService{ledgerRepo: ledgerRepo, cache: cache}
}

// BuildPortfolio constructs a portfolio over the ledger rows of the given
// accounts (all accounts when empty), evaluated at asOf (now when zero).
// Construction refreshes the shared price cache for the ledger's symbols.
func (s *ValuationService) BuildPortfolio(ctx context.Context, accounts []string, asOf time.Time) (*portfolio.Portfolio, error) {
	transactions, err := s.ledgerRepo.GetTransactions(accounts)
	if err != nil {
		return nil, err
	}

	var opts []portfolio.Option
	if !asOf.IsZero() {
		opts = append(opts, portfolio.WithAsOf(asOf))
	}
	return portfolio.New(ctx, transactions, s.cache, opts...)
}

// Snapshot returns the public position table for the given accounts.
func (s *ValuationService) Snapshot(ctx context.Context, accounts []string, asOf time.Time) ([]model.Position, error) {
	p, err := s.BuildPortfolio(ctx, accounts, asOf)
	if err != nil {
		return nil, err
	}
	return p.Snapshot()
}

// CombinedSnapshot builds one portfolio per account group, combines them
// into a single view, and returns its public position table. Combining
// rather than listing all accounts at once keeps each group's ledger intact
// while the caches merge.
func (s *ValuationService) CombinedSnapshot(ctx context.Context, accountGroups [][]string, asOf time.Time) ([]model.Position, error) {
	if len(accountGroups) == 0 {
		return s.Snapshot(ctx, nil, asOf)
	}

	combined, err := s.BuildPortfolio(ctx, accountGroups[0], asOf)
	if err != nil {
		return nil, err
	}
	for _, accounts := range accountGroups[1:] {
		next, err := s.BuildPortfolio(ctx, accounts, asOf)
		if err != nil {
			return nil, err
		}
		if combined, err = combined.Combine(ctx, next); err != nil {
			return nil, err
		}
	}
	return combined.Snapshot()
}

// UpcomingLTCGLots returns the short-term lots projected to reach long-term
// status within the given number of days, optionally filtered by symbol.
func (s *ValuationService) UpcomingLTCGLots(ctx context.Context, accounts []string, asOf time.Time, withinDays int, filter portfolio.SymbolFilter) ([]model.DerivedTransaction, error) {
	p, err := s.BuildPortfolio(ctx, accounts, asOf)
	if err != nil {
		return nil, err
	}
	return p.UpcomingLTCGLots(withinDays, filter)
}
