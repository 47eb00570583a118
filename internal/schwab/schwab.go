// Package schwab implements the brokerage-transaction capability against the
// Schwab trader API. The API limits each transactions query to a one-year
// window, so combined retrieval chunks the requested range into yearly
// slices per account and transaction type.
package schwab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production trader API endpoint.
const DefaultBaseURL = "https://api.schwabapi.com/trader/v1/accounts"

// maxWindow is the widest date range a single transactions query accepts.
const maxWindow = 365 * 24 * time.Hour

// Client defines the interface for fetching brokerage transactions.
// This interface enables dependency injection and testing with mock
// implementations.
type Client interface {
	AccountNumbers(ctx context.Context, token string) ([]Account, error)
	CombinedTransactions(ctx context.Context, token string, start, end time.Time) ([]Transaction, error)
}

// APIClient is the HTTP implementation of Client.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a trader API client. An empty baseURL selects the
// production endpoint.
func NewAPIClient(baseURL string) *APIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// AccountNumbers retrieves the account number / hash pairs the token is
// authorized for.
func (c *APIClient) AccountNumbers(ctx context.Context, token string) ([]Account, error) {
	var accounts []Account
	if err := c.get(ctx, token, c.baseURL+"/accountNumbers", nil, &accounts); err != nil {
		return nil, fmt.Errorf("account numbers: %w", err)
	}
	return accounts, nil
}

// AccountTransactions retrieves one account's transactions of one type
// within [start, end]. The window must not exceed the API's one-year limit;
// CombinedTransactions handles chunking.
func (c *APIClient) AccountTransactions(ctx context.Context, token, accountHash string, start, end time.Time, txType string) ([]Transaction, error) {
	params := url.Values{}
	params.Set("startDate", start.UTC().Format("2006-01-02T15:04:05.000Z"))
	params.Set("endDate", end.UTC().Format("2006-01-02T15:04:05.000Z"))
	params.Set("types", txType)

	endpoint := fmt.Sprintf("%s/%s/transactions", c.baseURL, accountHash)
	var transactions []Transaction
	if err := c.get(ctx, token, endpoint, params, &transactions); err != nil {
		return nil, fmt.Errorf("transactions for %s (%s): %w", accountHash, txType, err)
	}
	return transactions, nil
}

// CombinedTransactions retrieves every transaction type for every authorized
// account over [start, end], slicing the range into yearly windows to
// respect the API's range limit.
func (c *APIClient) CombinedTransactions(ctx context.Context, token string, start, end time.Time) ([]Transaction, error) {
	accounts, err := c.AccountNumbers(ctx, token)
	if err != nil {
		return nil, err
	}

	windows := yearlyWindows(start, end)
	var combined []Transaction
	for _, account := range accounts {
		for _, txType := range TransactionTypes {
			for _, w := range windows {
				txns, err := c.AccountTransactions(ctx, token, account.HashValue, w.start, w.end, txType)
				if err != nil {
					return nil, err
				}
				combined = append(combined, txns...)
			}
		}
	}
	return combined, nil
}

type window struct {
	start, end time.Time
}

// yearlyWindows splits [start, end] into consecutive slices no wider than
// the API's one-year limit.
func yearlyWindows(start, end time.Time) []window {
	var windows []window
	for cursor := start; cursor.Before(end); {
		next := cursor.Add(maxWindow)
		if next.After(end) {
			next = end
		}
		windows = append(windows, window{start: cursor, end: next})
		cursor = next
	}
	return windows
}

func (c *APIClient) get(ctx context.Context, token, endpoint string, params url.Values, out any) error {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}
	return json.Unmarshal(data, out)
}
