package collector

import (
	"context"
	"fmt"
)

// MockQuoteFetcher returns canned CSV bodies for development and testing.
type MockQuoteFetcher struct {
	DailyBySymbol map[string]string
	QuoteBySymbol map[string]string
	DailyErr      map[string]error
	QuoteErr      map[string]error
}

func (m *MockQuoteFetcher) Name() string { return "mock" }

func (m *MockQuoteFetcher) DailyHistory(_ context.Context, symbol string) (string, error) {
	if err, ok := m.DailyErr[symbol]; ok {
		return "", err
	}
	if body, ok := m.DailyBySymbol[symbol]; ok {
		return body, nil
	}
	return "", fmt.Errorf("mock: no daily fixture for %s", symbol)
}

func (m *MockQuoteFetcher) Quote(_ context.Context, symbol string) (string, error) {
	if err, ok := m.QuoteErr[symbol]; ok {
		return "", err
	}
	if body, ok := m.QuoteBySymbol[symbol]; ok {
		return body, nil
	}
	return "", fmt.Errorf("mock: no quote fixture for %s", symbol)
}
