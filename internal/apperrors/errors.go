package apperrors

import "errors"

// Core accounting-engine errors. These are the failure modes of the
// lot/valuation pipeline itself, independent of any transport or storage.
var (
	// ErrInvalidAsOfDate indicates that the requested as-of date precedes at
	// least one transaction date, which would produce negative holding periods.
	ErrInvalidAsOfDate = errors.New("as-of date precedes a transaction date")

	// ErrPriceNotFound indicates that no price exists for a symbol at or
	// before the requested as-of date.
	ErrPriceNotFound = errors.New("price not found at or before as-of date")

	// ErrMissingPriceCache indicates that the price cache was queried before
	// any price data was loaded or fetched.
	ErrMissingPriceCache = errors.New("price cache holds no data")

	// ErrUnsupportedSymbolFilter indicates that a symbol filter was neither
	// empty, a single symbol, nor a set of symbols.
	ErrUnsupportedSymbolFilter = errors.New("unsupported symbol filter")

	// ErrUnsupportedPlatform indicates that a transaction export came from a
	// provider the normalizer does not recognize.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoTransactions indicates that a portfolio was constructed from an
	// empty transaction ledger.
	ErrNoTransactions = errors.New("no transactions provided")
)

// Business logic errors represent validation failures or constraint
// violations. These errors indicate that an operation cannot be completed
// due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidAction indicates a provider action code the normalizer does
	// not recognize.
	ErrInvalidAction = errors.New("unrecognized transaction action")
)

// Broker integration errors.
var (
	// ErrBrokerConfigNotFound indicates that no broker configuration has
	// been saved yet.
	ErrBrokerConfigNotFound = errors.New("broker configuration not found")

	// ErrBrokerDisabled indicates a sync attempt while the integration is
	// switched off or has no token.
	ErrBrokerDisabled = errors.New("broker integration is not enabled")
)
