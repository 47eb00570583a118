package schwab

import "time"

// TransactionTypes are the transaction categories the Schwab trader API
// paginates by. Every category is pulled when building a combined ledger.
var TransactionTypes = []string{
	"TRADE",
	"RECEIVE_AND_DELIVER",
	"DIVIDEND_OR_INTEREST",
	"ACH_RECEIPT",
	"ACH_DISBURSEMENT",
	"CASH_RECEIPT",
	"CASH_DISBURSEMENT",
	"ELECTRONIC_FUND",
	"WIRE_OUT",
	"WIRE_IN",
	"JOURNAL",
	"MEMORANDUM",
	"MARGIN_CALL",
	"MONEY_MARKET",
	"SMA_ADJUSTMENT",
}

// Account identifies one brokerage account. The API addresses accounts by
// HashValue, never by the plain account number.
type Account struct {
	AccountNumber string `json:"accountNumber"`
	HashValue     string `json:"hashValue"`
}

// Transaction is one raw transaction record as returned by the trader API.
type Transaction struct {
	ActivityID    int64          `json:"activityId"`
	Type          string         `json:"type"`
	TradeDate     time.Time      `json:"tradeDate"`
	AccountNumber string         `json:"accountNumber"`
	NetAmount     float64        `json:"netAmount"`
	TransferItems []TransferItem `json:"transferItems"`
}

// TransferItem is one leg of a raw transaction: a cash leg (CURRENCY asset
// type) or an instrument leg carrying symbol, share amount, and price.
type TransferItem struct {
	Instrument Instrument `json:"instrument"`
	Amount     float64    `json:"amount"`
	Price      float64    `json:"price"`
}

// Instrument describes the asset on one transfer leg.
type Instrument struct {
	AssetType string `json:"assetType"`
	Symbol    string `json:"symbol"`
}
