package schwab

import (
	"fmt"

	"github.com/lotledger/lotledger/internal/model"
)

// ParseTrades converts raw TRADE transactions into standardized ledger rows.
// Each trade must carry exactly one non-currency transfer leg; the cash leg
// is folded into the net amount the API already reports. The action is
// inferred from the share amount's sign. Identical rows (the API can return
// the same activity in overlapping windows) are dropped.
func ParseTrades(raw []Transaction) ([]model.Transaction, error) {
	seen := make(map[string]bool, len(raw))
	trades := make([]model.Transaction, 0, len(raw))

	for _, t := range raw {
		var instruments []TransferItem
		for _, item := range t.TransferItems {
			if item.Instrument.AssetType != "CURRENCY" {
				instruments = append(instruments, item)
			}
		}
		if len(instruments) != 1 {
			return nil, fmt.Errorf("trade %d: expected 1 instrument leg, got %d", t.ActivityID, len(instruments))
		}
		leg := instruments[0]

		action := model.ActionBuy
		if leg.Amount < 0 {
			action = model.ActionSell
		}

		trade := model.Transaction{
			Date:     t.TradeDate,
			Account:  t.AccountNumber,
			Symbol:   leg.Instrument.Symbol,
			Action:   action,
			Quantity: leg.Amount,
			Price:    leg.Price,
			Amount:   t.NetAmount,
		}

		key := fmt.Sprintf("%s|%s|%s|%v|%v|%v",
			trade.Date.UTC().Format("2006-01-02"), trade.Account, trade.Symbol,
			trade.Quantity, trade.Price, trade.Amount)
		if seen[key] {
			continue
		}
		seen[key] = true
		trades = append(trades, trade)
	}
	return trades, nil
}
