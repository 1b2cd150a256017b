package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"
)

// Client is the interface for fetching quotes and dividend events.
// Satisfied by FinanceClient in production and by mocks in tests.
type Client interface {
	QueryLatestQuote(ctx context.Context, symbol string) (Quote, error)
	QueryDividends(ctx context.Context, symbol string, startDate, endDate time.Time) ([]DividendEvent, error)
}

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// It wraps an HTTP client and provides convenient methods for querying the
// latest quote and historical dividend events for a symbol.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// QueryLatestQuote fetches the most recent price for a symbol.
//
// The regular market price from the chart metadata is preferred; when the
// API omits it, the latest close from a 5-day daily range is used instead.
//
// Parameters:
//   - symbol: Stock ticker symbol (e.g., "ULTY")
//
// Returns:
//   - Quote: Symbol, currency, price, and the time of the underlying data point
//   - error: If the HTTP request fails, the API returns an error, or no usable price exists
func (c *FinanceClient) QueryLatestQuote(ctx context.Context, symbol string) (Quote, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", symbol)
	response, err := c.queryYahoo(ctx, url)
	if err != nil {
		return Quote{}, err
	}
	if len(response.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := response.Chart.Result[0]
	quote := Quote{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		AsOf:     time.Now().UTC(),
	}

	if result.Meta.RegularMarketPrice > 0 {
		quote.Price = result.Meta.RegularMarketPrice
		return quote, nil
	}

	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return Quote{}, fmt.Errorf("no close prices returned for symbol %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	timestamps := result.Timestamp
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			quote.Price = closes[i]
			if i < len(timestamps) {
				quote.AsOf = time.Unix(timestamps[i], 0).UTC()
			}
			return quote, nil
		}
	}

	return Quote{}, fmt.Errorf("no usable price returned for symbol %s", symbol)
}

// QueryDividends fetches the dividend events for a symbol within a date range.
//
// The chart API reports dividends as a map keyed by timestamp; the result is
// flattened into {pay date, amount} pairs sorted ascending by date, with pay
// dates truncated to midnight UTC to match the tracker's day granularity.
//
// Parameters:
//   - symbol: Stock ticker symbol (e.g., "ULTY")
//   - startDate: Beginning of date range (inclusive)
//   - endDate: End of date range (inclusive)
//
// Returns:
//   - []DividendEvent: Sorted dividend events; empty when none were paid in range
//   - error: If the HTTP request fails or the API returns an error
func (c *FinanceClient) QueryDividends(ctx context.Context, symbol string, startDate, endDate time.Time) ([]DividendEvent, error) {
	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&events=div&period1=%d&period2=%d",
		symbol,
		startDate.Unix(),
		endDate.AddDate(0, 0, 1).Unix(),
	)
	response, err := c.queryYahoo(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	raw := response.Chart.Result[0].Events.Dividends
	events := make([]DividendEvent, 0, len(raw))
	for _, d := range raw {
		payDate := time.Unix(d.Date, 0).UTC().Truncate(24 * time.Hour)
		if payDate.Before(startDate) || payDate.After(endDate) {
			continue
		}
		events = append(events, DividendEvent{Date: payDate, Amount: d.Amount})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })

	return events, nil
}

// queryYahoo is an internal helper that executes HTTP requests to Yahoo Finance API.
// It handles the common logic of making the request, reading the response,
// parsing JSON, and checking for API-level errors.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

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
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
