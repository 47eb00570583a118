package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/repository"
	"github.com/lotledger/lotledger/internal/schwab"
)

// BrokerService handles the Schwab trader-API integration: configuration,
// token lifecycle, and pulling trades into the standardized ledger.
type BrokerService struct {
	configRepo *repository.BrokerConfigRepository
	ledgerRepo *repository.LedgerRepository
	client     schwab.Client
}

// NewBrokerService creates a new BrokerService with the provided
// dependencies.
func NewBrokerService(configRepo *repository.BrokerConfigRepository, ledgerRepo *repository.LedgerRepository, client schwab.Client) *BrokerService {
	return &BrokerService{
		configRepo: configRepo,
		ledgerRepo: ledgerRepo,
		client:     client,
	}
}

// GetConfig retrieves the broker configuration. Adds a token expiration
// warning if the token expires within 30 days.
func (s *BrokerService) GetConfig() (*model.BrokerConfig, error) {
	config, err := s.configRepo.GetConfig()
	if err != nil {
		return nil, err
	}

	if config.TokenExpiresAt != nil && !config.TokenExpiresAt.IsZero() {
		diff := time.Until(*config.TokenExpiresAt)
		if diff.Hours() <= 720.0 {
			config.TokenWarning = fmt.Sprintf("Token expires in %d days",
				int64(diff.Hours()/24))
		}
	}

	return config, nil
}

// UpdateConfig saves the broker configuration, encrypting the token at rest.
func (s *BrokerService) UpdateConfig(config *model.BrokerConfig) (*model.BrokerConfig, error) {
	return s.configRepo.SaveConfig(config)
}

// SyncTrades pulls trades from the broker API over [start, now], converts
// them to standardized transactions, and appends them to the ledger. A zero
// start falls back to the earliest ledger date, or one year back when the
// ledger is empty.
func (s *BrokerService) SyncTrades(ctx context.Context, start time.Time) ([]model.Transaction, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}
	if !config.Enabled || config.Token == "" {
		return nil, apperrors.ErrBrokerDisabled
	}

	end := time.Now().UTC()
	if !start.IsZero() && start.After(end) {
		return nil, fmt.Errorf("%w: start %s is in the future",
			apperrors.ErrInvalidDateRange, start.Format("2006-01-02"))
	}
	if start.IsZero() {
		start, err = s.ledgerRepo.GetOldestTransactionDate()
		if err != nil {
			return nil, err
		}
		if start.IsZero() {
			start = end.AddDate(-1, 0, 0)
		}
	}

	raw, err := s.client.CombinedTransactions(ctx, config.Token, start, end)
	if err != nil {
		return nil, err
	}

	var rawTrades []schwab.Transaction
	for _, t := range raw {
		if t.Type == "TRADE" {
			rawTrades = append(rawTrades, t)
		}
	}

	trades, err := schwab.ParseTrades(rawTrades)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, nil
	}

	return s.ledgerRepo.InsertTransactions(trades)
}
