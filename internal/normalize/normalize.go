// Package normalize maps provider-specific transaction exports onto the
// standardized ledger schema: date, account, symbol, action, quantity,
// price, amount. Each supported platform contributes its own column and
// action-code mapping; the accounting engine only ever sees the
// standardized form.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
)

// RawRow is one row of a provider export, keyed by the provider's own
// column names.
type RawRow map[string]string

// Standardize converts a provider export into standardized transactions,
// tagging every row with accountName. Recognized platforms are "schwab" and
// "marcus" (case-insensitive); anything else fails with
// apperrors.ErrUnsupportedPlatform.
func Standardize(platform, accountName string, rows []RawRow) ([]model.Transaction, error) {
	switch strings.ToLower(platform) {
	case "schwab":
		return standardizeSchwab(accountName, rows)
	case "marcus":
		return standardizeMarcus(accountName, rows)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedPlatform, platform)
	}
}

var schwabActions = map[string]model.Action{
	"Non-Qualified Div":  model.ActionDividend,
	"Cash Dividend":      model.ActionDividend,
	"Qualified Dividend": model.ActionDividend,
	"Margin Interest":    model.ActionInterestPaid,
	"Credit Interest":    model.ActionInterestEarned,
	"MoneyLink Transfer": model.ActionACH,
	"Buy":                model.ActionBuy,
	"Sell":               model.ActionSell,
	"Journal":            model.ActionTransfer,
	"Security Transfer":  model.ActionTransfer,
}

func standardizeSchwab(accountName string, rows []RawRow) ([]model.Transaction, error) {
	transactions := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		// Schwab prefixes settlement annotations on some dates; the calendar
		// date is always the trailing MM/DD/YYYY.
		rawDate := row["Date"]
		if len(rawDate) > 10 {
			rawDate = rawDate[len(rawDate)-10:]
		}
		date, err := time.Parse("01/02/2006", rawDate)
		if err != nil {
			return nil, fmt.Errorf("schwab row %d: parse date %q: %w", i, row["Date"], err)
		}

		action, ok := schwabActions[row["Action"]]
		if !ok {
			return nil, fmt.Errorf("schwab row %d: %w: %q", i, apperrors.ErrInvalidAction, row["Action"])
		}

		quantity, err := parseNumber(row["Quantity"])
		if err != nil {
			return nil, fmt.Errorf("schwab row %d: parse quantity: %w", i, err)
		}
		price, err := parseDollar(row["Price"])
		if err != nil {
			return nil, fmt.Errorf("schwab row %d: parse price: %w", i, err)
		}
		amount, err := parseDollar(row["Amount"])
		if err != nil {
			return nil, fmt.Errorf("schwab row %d: parse amount: %w", i, err)
		}

		transactions = append(transactions, model.Transaction{
			Date:     date,
			Account:  accountName,
			Symbol:   row["Symbol"],
			Action:   action,
			Quantity: quantity,
			Price:    price,
			Amount:   amount,
		})
	}
	return transactions, nil
}

var marcusActions = map[string]model.Action{
	"A": model.ActionACH,
	"B": model.ActionBuy,
	"C": model.ActionCapGain,
	"D": model.ActionDividend,
	"F": model.ActionFee,
	"S": model.ActionSell,
	"T": model.ActionTransfer,
}

func standardizeMarcus(accountName string, rows []RawRow) ([]model.Transaction, error) {
	transactions := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse("2006-01-02", row["Date"])
		if err != nil {
			return nil, fmt.Errorf("marcus row %d: parse date %q: %w", i, row["Date"], err)
		}

		action, ok := marcusActions[row["Transaction"]]
		if !ok {
			return nil, fmt.Errorf("marcus row %d: %w: %q", i, apperrors.ErrInvalidAction, row["Transaction"])
		}

		quantity, err := parseNumber(row["Quantity"])
		if err != nil {
			return nil, fmt.Errorf("marcus row %d: parse quantity: %w", i, err)
		}
		price, err := parseDollar(row["Price"])
		if err != nil {
			return nil, fmt.Errorf("marcus row %d: parse price: %w", i, err)
		}
		credit, err := parseDollar(row["Credit"])
		if err != nil {
			return nil, fmt.Errorf("marcus row %d: parse credit: %w", i, err)
		}
		debit, err := parseDollar(row["Debit"])
		if err != nil {
			return nil, fmt.Errorf("marcus row %d: parse debit: %w", i, err)
		}

		transactions = append(transactions, model.Transaction{
			Date:     date,
			Account:  accountName,
			Symbol:   row["Desc"],
			Action:   action,
			Quantity: quantity,
			Price:    price,
			Amount:   credit - debit,
		})
	}
	return transactions, nil
}

// parseDollar parses a currency string, stripping "$" and thousands commas.
// Empty strings parse as zero (non-trade rows leave money columns blank).
func parseDollar(s string) (float64, error) {
	s = strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "$", ""), ",", "")
	return parseNumber(s)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
