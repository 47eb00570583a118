package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/lotledger/lotledger/internal/model"
)

// FetchCall records one Fetch invocation against a StaticSource.
type FetchCall struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

// StaticSource is an in-memory price source for tests. It returns the
// configured points for a symbol regardless of the requested range and
// records every call. Satisfies pricecache.Source.
type StaticSource struct {
	mu    sync.Mutex
	Data  map[string][]model.PricePoint
	Err   error
	calls []FetchCall
}

// NewStaticSource builds a source serving the given points, grouped by
// symbol.
func NewStaticSource(points ...model.PricePoint) *StaticSource {
	data := make(map[string][]model.PricePoint)
	for _, p := range points {
		data[p.Symbol] = append(data[p.Symbol], p)
	}
	return &StaticSource{Data: data}
}

// Fetch returns the configured points for symbol.
func (s *StaticSource) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, FetchCall{Symbol: symbol, Start: start, End: end})
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Data[symbol], nil
}

// Calls returns a copy of the recorded fetch calls.
func (s *StaticSource) Calls() []FetchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FetchCall(nil), s.calls...)
}
