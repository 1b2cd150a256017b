package testutil

import (
	"context"
	"time"

	"github.com/mphinance/ulty-tracker/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockYahooClient struct {
	// MockQuote is the quote to return from QueryLatestQuote
	MockQuote yahoo.Quote
	// MockDividends are the events to return from QueryDividends
	MockDividends []yahoo.DividendEvent
	// MockError is the error to return from query methods
	MockError error
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockYahooClient creates a new mock client with a default quote.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockQuote: yahoo.Quote{
			Symbol:   TestSymbol,
			Currency: "USD",
			Price:    6.23,
			AsOf:     time.Now().UTC(),
		},
	}
}

// QueryLatestQuote returns the configured MockQuote and MockError.
func (m *MockYahooClient) QueryLatestQuote(_ context.Context, _ string) (yahoo.Quote, error) {
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Quote{}, m.MockError
	}
	return m.MockQuote, nil
}

// QueryDividends returns the configured MockDividends, filtered to the
// requested range, and MockError.
func (m *MockYahooClient) QueryDividends(_ context.Context, _ string, startDate, endDate time.Time) ([]yahoo.DividendEvent, error) {
	m.QueryCount++
	if m.MockError != nil {
		return nil, m.MockError
	}

	events := make([]yahoo.DividendEvent, 0, len(m.MockDividends))
	for _, ev := range m.MockDividends {
		if ev.Date.Before(startDate) || ev.Date.After(endDate) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// WithPrice configures the mock quote price.
func (m *MockYahooClient) WithPrice(price float64) *MockYahooClient {
	m.MockQuote.Price = price
	return m
}

// WithDividends configures the dividend events to return.
func (m *MockYahooClient) WithDividends(events ...yahoo.DividendEvent) *MockYahooClient {
	m.MockDividends = events
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}
