package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/pricecache"
	"github.com/lotledger/lotledger/internal/repository"
)

// PriceService ties the in-memory price cache to its persisted warm copy and
// drives scheduled refreshes.
type PriceService struct {
	priceRepo  *repository.PriceRepository
	ledgerRepo *repository.LedgerRepository
	cache      *pricecache.Cache
}

// NewPriceService creates a new PriceService with the provided repositories
// and shared price cache.
func NewPriceService(priceRepo *repository.PriceRepository, ledgerRepo *repository.LedgerRepository, cache *pricecache.Cache) *PriceService {
	return &PriceService{priceRepo: priceRepo, ledgerRepo: ledgerRepo, cache: cache}
}

// WarmCache loads the persisted price history into the in-memory cache.
// Called once at startup before any portfolio is constructed.
func (s *PriceService) WarmCache() error {
	points, err := s.priceRepo.GetAllPrices()
	if err != nil {
		return err
	}
	s.cache.Load(points)
	log.Printf("Warmed price cache with %d persisted points", len(points))
	return nil
}

// Persist writes the cache's current contents to the database. Existing
// (symbol, date) rows are left untouched.
func (s *PriceService) Persist() (int, error) {
	return s.priceRepo.UpsertPrices(s.cache.All())
}

// RefreshAll refreshes the cache for every symbol in the ledger and persists
// the result. This is the scheduled-job entrypoint.
func (s *PriceService) RefreshAll(ctx context.Context) (*model.PriceRefreshResult, error) {
	symbols, err := s.ledgerRepo.GetSymbols()
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return &model.PriceRefreshResult{}, nil
	}

	if err := s.cache.Refresh(ctx, symbols, time.Now()); err != nil {
		return nil, fmt.Errorf("refresh prices: %w", err)
	}

	added, err := s.Persist()
	if err != nil {
		return nil, err
	}
	return &model.PriceRefreshResult{
		Symbols:      symbols,
		CachedPoints: s.cache.Len(),
		NewRows:      added,
	}, nil
}
