package service_test

import (
	"errors"
	"testing"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/normalize"
	"github.com/lotledger/lotledger/internal/repository"
	"github.com/lotledger/lotledger/internal/service"
	"github.com/lotledger/lotledger/internal/testutil"
)

func TestLedgerService_ImportTransactions(t *testing.T) {
	t.Run("normalizes and stores a provider export", func(t *testing.T) {
		repo := repository.NewLedgerRepository(testutil.SetupTestDB(t))
		svc := service.NewLedgerService(repo)

		rows := []normalize.RawRow{{
			"Date":     "03/15/2024",
			"Action":   "Buy",
			"Symbol":   "ABC",
			"Quantity": "10",
			"Price":    "$100.00",
			"Amount":   "-$1,000.00",
		}}

		inserted, err := svc.ImportTransactions("schwab", "brokerage", rows)
		if err != nil {
			t.Fatalf("ImportTransactions() returned unexpected error: %v", err)
		}
		if len(inserted) != 1 || inserted[0].ID == "" {
			t.Fatalf("Expected 1 stored transaction with an id, got %+v", inserted)
		}

		stored, err := svc.GetTransactions(nil)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(stored) != 1 || stored[0].Action != model.ActionBuy || stored[0].Amount != -1000 {
			t.Errorf("Expected stored BUY with amount -1000, got %+v", stored)
		}
	})

	t.Run("rejects an unsupported platform before touching the ledger", func(t *testing.T) {
		repo := repository.NewLedgerRepository(testutil.SetupTestDB(t))
		svc := service.NewLedgerService(repo)

		_, err := svc.ImportTransactions("vanguard", "acct", nil)
		if !errors.Is(err, apperrors.ErrUnsupportedPlatform) {
			t.Fatalf("Expected ErrUnsupportedPlatform, got %v", err)
		}

		stored, err := svc.GetTransactions(nil)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(stored) != 0 {
			t.Errorf("Expected empty ledger after failed import, got %d rows", len(stored))
		}
	})
}
