// Package request defines the JSON request bodies accepted by the API.
package request

import "github.com/lotledger/lotledger/internal/normalize"

// ImportTransactionsRequest carries one provider export to normalize and
// append to the ledger.
type ImportTransactionsRequest struct {
	Platform string             `json:"platform"`
	Account  string             `json:"account"`
	Rows     []normalize.RawRow `json:"rows"`
}

// UpdateBrokerConfigRequest updates the Schwab integration settings. Nil
// pointer fields are left unchanged.
type UpdateBrokerConfigRequest struct {
	Enabled        *bool   `json:"enabled"`
	Token          *string `json:"token"`
	TokenExpiresAt *string `json:"tokenExpiresAt"`
}

// SyncTradesRequest triggers a broker trade pull. StartDate is optional
// ("2006-01-02"); when empty the sync starts at the oldest ledger row.
type SyncTradesRequest struct {
	StartDate string `json:"startDate"`
}
