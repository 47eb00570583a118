package model

// DerivedTransaction is a standardized transaction annotated with the
// holding-period fields the valuation pipeline computes against a fixed
// as-of date. Derived fields are recomputed in full whenever the ledger or
// the as-of date changes; they are never patched incrementally.
type DerivedTransaction struct {
	Transaction

	// HoldingPeriodDays is the whole number of days between the transaction
	// date and the as-of date. Never negative for valid input.
	HoldingPeriodDays int `json:"holdingPeriodDays"`

	// AmountHoldingPeriodDays is Amount * HoldingPeriodDays, the weighting
	// term used for the weighted-average holding period. Its sign inherits
	// from Amount.
	AmountHoldingPeriodDays float64 `json:"amountHoldingPeriodDays"`

	// LTCGFlag is 1 when the holding period exceeds the long-term
	// capital-gains threshold, 0 otherwise.
	LTCGFlag int `json:"ltcgFlag"`

	// LTCGShares is Quantity when flagged long-term, 0 otherwise.
	LTCGShares float64 `json:"ltcgShares"`

	// LTCGCost is LTCGShares * Price.
	LTCGCost float64 `json:"ltcgCost"`

	// CumQuantity is the running share total for the symbol after this
	// transaction, in (symbol, date) order with ledger order breaking ties.
	CumQuantity float64 `json:"cumQuantity"`
}
