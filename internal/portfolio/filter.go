package portfolio

import "github.com/lotledger/lotledger/internal/apperrors"

type filterKind int

const (
	filterNone filterKind = iota
	filterSingle
	filterMany
)

// SymbolFilter is a tagged selection over lot symbols: no filter, one
// symbol, or a set of symbols. The zero value matches everything.
type SymbolFilter struct {
	kind   filterKind
	single string
	many   map[string]bool
}

// NoFilter matches every symbol.
func NoFilter() SymbolFilter {
	return SymbolFilter{kind: filterNone}
}

// FilterSymbol matches exactly one symbol.
func FilterSymbol(symbol string) SymbolFilter {
	return SymbolFilter{kind: filterSingle, single: symbol}
}

// FilterSymbols matches any symbol in the given set.
func FilterSymbols(symbols []string) SymbolFilter {
	many := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		many[s] = true
	}
	return SymbolFilter{kind: filterMany, many: many}
}

func (f SymbolFilter) validate() error {
	switch f.kind {
	case filterNone, filterSingle, filterMany:
		return nil
	default:
		return apperrors.ErrUnsupportedSymbolFilter
	}
}

func (f SymbolFilter) matches(symbol string) bool {
	switch f.kind {
	case filterSingle:
		return symbol == f.single
	case filterMany:
		return f.many[symbol]
	default:
		return true
	}
}
