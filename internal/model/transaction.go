package model

import "time"

// Action classifies a brokerage event in the standardized ledger.
type Action string

// Standardized transaction actions. Provider-specific action codes are mapped
// onto these by the normalize package.
const (
	ActionBuy            Action = "BUY"
	ActionSell           Action = "SELL"
	ActionDividend       Action = "DIVIDEND"
	ActionSplit          Action = "SPLIT"
	ActionACH            Action = "ACH"
	ActionInterestEarned Action = "INTEREST EARNED"
	ActionInterestPaid   Action = "INTEREST PAID"
	ActionFee            Action = "FEE"
	ActionTransfer       Action = "TRANSFER"
	ActionCapGain        Action = "CAP GAIN"
)

// ValidActions contains the allowed action values for standardized transactions.
var ValidActions = map[Action]bool{
	ActionBuy:            true,
	ActionSell:           true,
	ActionDividend:       true,
	ActionSplit:          true,
	ActionACH:            true,
	ActionInterestEarned: true,
	ActionInterestPaid:   true,
	ActionFee:            true,
	ActionTransfer:       true,
	ActionCapGain:        true,
}

// Transaction represents one standardized brokerage event.
//
// Quantity is signed (negative for sells), Price is the non-negative
// per-share price, and Amount is the signed cash flow: negative for
// purchases and outflows, positive for proceeds and inflows. Amount is NOT
// guaranteed to equal Quantity*Price; fees and non-trade actions break that
// relation, so both fields are independently meaningful.
type Transaction struct {
	ID        string    `json:"id,omitempty"`
	Date      time.Time `json:"date"`
	Account   string    `json:"account"`
	Symbol    string    `json:"symbol"`
	Action    Action    `json:"action"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
