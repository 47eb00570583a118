// Package yahoo implements the price-source capability against the Yahoo
// Finance chart API. It is the only place the price cache's data crosses a
// network boundary.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lotledger/lotledger/internal/model"
)

const chartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// FinanceClient fetches daily price history from Yahoo Finance. It satisfies
// pricecache.Source.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves daily close price and volume for a symbol. A zero start
// and end request the full available history (range=max); otherwise the
// query is bounded by period1/period2 Unix timestamps. Yahoo treats period2
// as an exclusive upper bound, so one day is added to make the requested
// end date inclusive.
func (c *FinanceClient) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error) {
	var url string
	if start.IsZero() && end.IsZero() {
		url = fmt.Sprintf("%s/%s?interval=1d&range=max", chartURL, symbol)
	} else {
		url = fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
			chartURL, symbol, start.Unix(), end.AddDate(0, 0, 1).Unix())
	}

	response, err := c.query(ctx, url)
	if err != nil {
		return nil, err
	}
	return PricePoints(symbol, response)
}

// PricePoints converts a raw chart response into daily price points for the
// given symbol.
//
// The conversion validates that:
//   - the response contains a result
//   - timestamp data is present
//   - close price data is present
//   - data arrays have matching lengths
func PricePoints(symbol string, response Response) ([]model.PricePoint, error) {
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	result := response.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no price data returned for symbol %s", symbol)
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return nil, fmt.Errorf("no close prices returned for symbol %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("mismatched data lengths for symbol %s", symbol)
	}

	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		point := model.PricePoint{
			Symbol: symbol,
			Date:   day,
			Close:  quote.Close[i],
		}
		if i < len(quote.Volume) {
			point.Volume = quote.Volume[i]
		}
		points = append(points, point)
	}
	return points, nil
}

// query executes a chart API request and decodes the response, surfacing any
// error Yahoo reports in the payload.
func (c *FinanceClient) query(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	// Yahoo blocks requests without a browser-looking user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}
	if response.Chart.Error != nil {
		return Response{}, fmt.Errorf("yahoo api error: %s", *response.Chart.Error)
	}
	return response, nil
}
