package model

// PriceRefreshResult summarizes one price refresh cycle: the symbols
// refreshed, the cache size afterwards, and how many rows the persisted copy
// gained.
type PriceRefreshResult struct {
	Symbols      []string `json:"symbols"`
	CachedPoints int      `json:"cachedPoints"`
	NewRows      int      `json:"newRows"`
}
