package normalize_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
	"github.com/lotledger/lotledger/internal/normalize"
)

func TestStandardize_Schwab(t *testing.T) {
	t.Run("maps a buy row onto the ledger schema", func(t *testing.T) {
		rows := []normalize.RawRow{{
			"Date":     "03/15/2024",
			"Action":   "Buy",
			"Symbol":   "ABC",
			"Quantity": "10",
			"Price":    "$100.50",
			"Amount":   "-$1,005.00",
		}}

		txns, err := normalize.Standardize("schwab", "brokerage", rows)
		if err != nil {
			t.Fatalf("Standardize() returned unexpected error: %v", err)
		}
		if len(txns) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(txns))
		}

		tx := txns[0]
		if !tx.Date.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected date 2024-03-15, got %v", tx.Date)
		}
		if tx.Account != "brokerage" {
			t.Errorf("Expected account brokerage, got %s", tx.Account)
		}
		if tx.Action != model.ActionBuy {
			t.Errorf("Expected BUY, got %s", tx.Action)
		}
		if tx.Quantity != 10 || tx.Price != 100.50 || tx.Amount != -1005 {
			t.Errorf("Expected qty 10 / price 100.50 / amount -1005, got %v / %v / %v",
				tx.Quantity, tx.Price, tx.Amount)
		}
	})

	t.Run("strips settlement annotation from dates", func(t *testing.T) {
		rows := []normalize.RawRow{{
			"Date":   "03/13/2024 as of 03/15/2024",
			"Action": "Cash Dividend",
			"Symbol": "ABC",
			"Amount": "$12.34",
		}}

		txns, err := normalize.Standardize("schwab", "brokerage", rows)
		if err != nil {
			t.Fatalf("Standardize() returned unexpected error: %v", err)
		}
		if !txns[0].Date.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected trailing date 2024-03-15, got %v", txns[0].Date)
		}
		if txns[0].Action != model.ActionDividend {
			t.Errorf("Expected DIVIDEND, got %s", txns[0].Action)
		}
	})

	t.Run("blank money columns parse as zero", func(t *testing.T) {
		rows := []normalize.RawRow{{
			"Date":   "01/02/2024",
			"Action": "Journal",
			"Amount": "",
		}}

		txns, err := normalize.Standardize("schwab", "brokerage", rows)
		if err != nil {
			t.Fatalf("Standardize() returned unexpected error: %v", err)
		}
		if txns[0].Action != model.ActionTransfer || txns[0].Amount != 0 {
			t.Errorf("Expected TRANSFER with zero amount, got %s / %v",
				txns[0].Action, txns[0].Amount)
		}
	})

	t.Run("unknown action code fails", func(t *testing.T) {
		rows := []normalize.RawRow{{
			"Date":   "01/02/2024",
			"Action": "Short Sale",
		}}

		_, err := normalize.Standardize("schwab", "brokerage", rows)
		if !errors.Is(err, apperrors.ErrInvalidAction) {
			t.Fatalf("Expected ErrInvalidAction, got %v", err)
		}
	})

	t.Run("malformed date fails", func(t *testing.T) {
		rows := []normalize.RawRow{{
			"Date":   "2024-01-02",
			"Action": "Buy",
		}}

		if _, err := normalize.Standardize("schwab", "brokerage", rows); err == nil {
			t.Fatal("Expected a date parse error")
		}
	})
}

func TestStandardize_Marcus(t *testing.T) {
	t.Run("amount is credit minus debit", func(t *testing.T) {
		rows := []normalize.RawRow{
			{
				"Date":        "2024-03-15",
				"Transaction": "B",
				"Desc":        "ABC",
				"Quantity":    "10",
				"Price":       "100.50",
				"Debit":       "1005.00",
			},
			{
				"Date":        "2024-03-20",
				"Transaction": "D",
				"Desc":        "ABC",
				"Credit":      "12.34",
			},
		}

		txns, err := normalize.Standardize("marcus", "invest", rows)
		if err != nil {
			t.Fatalf("Standardize() returned unexpected error: %v", err)
		}

		if txns[0].Action != model.ActionBuy || txns[0].Amount != -1005 {
			t.Errorf("Expected BUY with amount -1005, got %s / %v", txns[0].Action, txns[0].Amount)
		}
		if txns[0].Symbol != "ABC" {
			t.Errorf("Expected symbol from Desc column, got %q", txns[0].Symbol)
		}
		if txns[1].Action != model.ActionDividend || txns[1].Amount != 12.34 {
			t.Errorf("Expected DIVIDEND with amount 12.34, got %s / %v", txns[1].Action, txns[1].Amount)
		}
	})

	t.Run("single-letter action codes", func(t *testing.T) {
		codes := map[string]model.Action{
			"A": model.ActionACH,
			"C": model.ActionCapGain,
			"F": model.ActionFee,
			"S": model.ActionSell,
			"T": model.ActionTransfer,
		}
		for code, want := range codes {
			rows := []normalize.RawRow{{"Date": "2024-01-02", "Transaction": code}}
			txns, err := normalize.Standardize("marcus", "invest", rows)
			if err != nil {
				t.Fatalf("Standardize(%q) returned unexpected error: %v", code, err)
			}
			if txns[0].Action != want {
				t.Errorf("Expected code %q to map to %s, got %s", code, want, txns[0].Action)
			}
		}
	})

	t.Run("unknown code fails", func(t *testing.T) {
		rows := []normalize.RawRow{{"Date": "2024-01-02", "Transaction": "X"}}
		if _, err := normalize.Standardize("marcus", "invest", rows); !errors.Is(err, apperrors.ErrInvalidAction) {
			t.Fatal("Expected ErrInvalidAction for unknown code")
		}
	})
}

func TestStandardize_UnsupportedPlatform(t *testing.T) {
	_, err := normalize.Standardize("vanguard", "acct", nil)
	if !errors.Is(err, apperrors.ErrUnsupportedPlatform) {
		t.Fatalf("Expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestStandardize_PlatformCaseInsensitive(t *testing.T) {
	rows := []normalize.RawRow{{"Date": "01/02/2024", "Action": "Buy"}}
	if _, err := normalize.Standardize("Schwab", "acct", rows); err != nil {
		t.Fatalf("Expected platform match to ignore case, got %v", err)
	}
}
