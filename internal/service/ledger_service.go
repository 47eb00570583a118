package service

import (
	"fmt"

	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/normalize"
	"github.com/lotledger/lotledger/internal/repository"
)

// LedgerService handles the standardized transaction ledger: importing
// provider exports through the normalizer and serving ledger queries.
type LedgerService struct {
	ledgerRepo *repository.LedgerRepository
}

// NewLedgerService creates a new LedgerService with the provided repository dependency.
func NewLedgerService(ledgerRepo *repository.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

// ImportTransactions normalizes a provider export and appends it to the
// ledger. Returns the stored standardized transactions.
func (s *LedgerService) ImportTransactions(platform, accountName string, rows []normalize.RawRow) ([]model.Transaction, error) {
	transactions, err := normalize.Standardize(platform, accountName, rows)
	if err != nil {
		return nil, err
	}
	inserted, err := s.ledgerRepo.InsertTransactions(transactions)
	if err != nil {
		return nil, fmt.Errorf("import %s/%s: %w", platform, accountName, err)
	}
	return inserted, nil
}

// ImportStandardized appends already-standardized transactions (e.g. parsed
// broker API trades) to the ledger.
func (s *LedgerService) ImportStandardized(transactions []model.Transaction) ([]model.Transaction, error) {
	return s.ledgerRepo.InsertTransactions(transactions)
}

// GetTransactions returns ledger rows, optionally restricted to accounts.
func (s *LedgerService) GetTransactions(accounts []string) ([]model.Transaction, error) {
	return s.ledgerRepo.GetTransactions(accounts)
}

// GetAccounts returns the distinct accounts in the ledger.
func (s *LedgerService) GetAccounts() ([]string, error) {
	return s.ledgerRepo.GetAccounts()
}
