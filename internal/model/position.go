package model

// Position is the aggregated point-in-time view of one symbol.
//
// CostBasis is the sum of signed cash flows and is typically negative for a
// net-purchased position; Gain = CostBasis + MarketValue is therefore the
// net P&L. The ratio fields are derived by dividing by CostBasis and are
// zero when the cost basis is near zero.
type Position struct {
	Symbol                  string  `json:"symbol"`
	NumShares               float64 `json:"numShares"`
	CostBasis               float64 `json:"costBasis"`
	WtdHoldingDays          float64 `json:"wtdHoldingDays"`
	LTCGShares              float64 `json:"ltcgShares"`
	LTCGCost                float64 `json:"ltcgCost"`
	CurrentPrice            float64 `json:"currentPrice"`
	MarketValue             float64 `json:"marketValue"`
	Gain                    float64 `json:"gain"`
	GainPerc                float64 `json:"gainPerc"`
	WtdAvgHoldingPeriodDays float64 `json:"wtdAvgHoldingPeriodDays"`
}
