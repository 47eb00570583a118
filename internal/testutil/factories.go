package testutil

import (
	"time"

	"github.com/lotledger/lotledger/internal/model"
)

// Day returns midnight UTC for the given date parts. Keeps test fixtures on
// whole calendar days, matching how the ledger stores dates.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Buy builds a standardized BUY transaction with Amount = -quantity*price.
func Buy(account, symbol string, date time.Time, quantity, price float64) model.Transaction {
	return model.Transaction{
		Date:     date,
		Account:  account,
		Symbol:   symbol,
		Action:   model.ActionBuy,
		Quantity: quantity,
		Price:    price,
		Amount:   -quantity * price,
	}
}

// Sell builds a standardized SELL transaction with negative quantity and
// Amount = -quantity*price (positive proceeds).
func Sell(account, symbol string, date time.Time, quantity, price float64) model.Transaction {
	return model.Transaction{
		Date:     date,
		Account:  account,
		Symbol:   symbol,
		Action:   model.ActionSell,
		Quantity: -quantity,
		Price:    price,
		Amount:   quantity * price,
	}
}

// Price builds one daily price point.
func Price(symbol string, date time.Time, close float64, volume int64) model.PricePoint {
	return model.PricePoint{Symbol: symbol, Date: date, Close: close, Volume: volume}
}
