package collector

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// MockQuoteFetcher returns controllable fixed quotes for development and testing.
// It records every batch it was asked for.
type MockQuoteFetcher struct {
	Quotes map[string]decimal.Decimal
	Err    error

	mu    sync.Mutex
	calls [][]string
}

func (m *MockQuoteFetcher) Name() string { return "mock" }

func (m *MockQuoteFetcher) FetchRates(_ context.Context, codes []string) (map[string]decimal.Decimal, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]string(nil), codes...))
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]decimal.Decimal, len(codes))
	for _, c := range codes {
		if q, ok := m.Quotes[strings.ToUpper(c)]; ok {
			out[strings.ToUpper(c)] = q
		}
	}
	return out, nil
}

// Calls returns a copy of the code batches requested so far.
func (m *MockQuoteFetcher) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.calls))
	copy(out, m.calls)
	return out
}
