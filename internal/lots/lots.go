// Package lots derives holding-period and tax-classification fields from a
// standardized transaction ledger relative to a fixed as-of date, and
// partitions the ledger into long-term and short-term lots.
package lots

import (
	"fmt"
	"sort"
	"time"

	"github.com/lotledger/lotledger/internal/apperrors"
	"github.com/lotledger/lotledger/internal/model"
)

// LongTermThresholdDays is the holding period, in days, beyond which a lot
// qualifies for long-term capital-gains treatment.
const LongTermThresholdDays = 365.25

// Result holds the fully derived ledger and its lot partitions. LongTerm and
// ShortTerm are disjoint views over Derived: every transaction appears in
// exactly one of them.
type Result struct {
	Derived   []model.DerivedTransaction
	LongTerm  []model.DerivedTransaction
	ShortTerm []model.DerivedTransaction

	// Symbols is the sorted set of distinct symbols in the ledger.
	Symbols []string

	finalQuantity map[string]float64
}

// Process computes the derived fields for every transaction against asOf and
// splits the result into long-term and short-term lots.
//
// Transactions are ordered by (symbol, date) ascending before the cumulative
// quantity is computed; the sort is stable, so equal dates keep their
// original ledger order. asOf must not precede any transaction date;
// otherwise Process fails with apperrors.ErrInvalidAsOfDate.
func Process(transactions []model.Transaction, asOf time.Time) (*Result, error) {
	if len(transactions) == 0 {
		return nil, apperrors.ErrNoTransactions
	}

	asOfDay := truncateToDay(asOf)
	for _, t := range transactions {
		if truncateToDay(t.Date).After(asOfDay) {
			return nil, fmt.Errorf("%w: transaction %q on %s is after %s",
				apperrors.ErrInvalidAsOfDate,
				t.Symbol,
				t.Date.Format("2006-01-02"),
				asOfDay.Format("2006-01-02"))
		}
	}

	derived := make([]model.DerivedTransaction, len(transactions))
	for i, t := range transactions {
		d := model.DerivedTransaction{Transaction: t}
		d.HoldingPeriodDays = daysBetween(t.Date, asOf)
		d.AmountHoldingPeriodDays = t.Amount * float64(d.HoldingPeriodDays)
		if float64(d.HoldingPeriodDays) > LongTermThresholdDays {
			d.LTCGFlag = 1
			d.LTCGShares = t.Quantity
			d.LTCGCost = d.LTCGShares * t.Price
		}
		derived[i] = d
	}

	sort.SliceStable(derived, func(i, j int) bool {
		if derived[i].Symbol != derived[j].Symbol {
			return derived[i].Symbol < derived[j].Symbol
		}
		return derived[i].Date.Before(derived[j].Date)
	})

	r := &Result{
		Derived:       derived,
		finalQuantity: make(map[string]float64),
	}

	running := make(map[string]float64)
	for i := range derived {
		sym := derived[i].Symbol
		running[sym] += derived[i].Quantity
		derived[i].CumQuantity = running[sym]
		r.finalQuantity[sym] = running[sym]
	}

	for i := range derived {
		if derived[i].LTCGFlag == 1 {
			r.LongTerm = append(r.LongTerm, derived[i])
		} else {
			r.ShortTerm = append(r.ShortTerm, derived[i])
		}
	}

	r.Symbols = make([]string, 0, len(r.finalQuantity))
	for sym := range r.finalQuantity {
		r.Symbols = append(r.Symbols, sym)
	}
	sort.Strings(r.Symbols)

	return r, nil
}

// FinalQuantity returns the cumulative share count for a symbol after its
// last chronological transaction, i.e. the open position size.
func (r *Result) FinalQuantity(symbol string) float64 {
	return r.finalQuantity[symbol]
}

// ActiveSymbols returns the symbols with an open position of at least one
// share in absolute terms. Closed and dust positions are excluded.
func (r *Result) ActiveSymbols() map[string]bool {
	active := make(map[string]bool, len(r.finalQuantity))
	for sym, qty := range r.finalQuantity {
		if qty >= 1 || qty <= -1 {
			active[sym] = true
		}
	}
	return active
}

// truncateToDay drops the time component, keeping the UTC calendar date.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}
