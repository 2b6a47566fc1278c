package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"VexlConverter/internal/model"
)

// MemoryStore keeps everything in memory. It is used when no SQLite path is
// configured or the database cannot be opened.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  int64
	rates   map[string]ExchangeRate
	history []model.HistoryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rates: make(map[string]ExchangeRate)}
}

func pairKey(from, to string) string {
	return strings.ToUpper(from) + "/" + strings.ToUpper(to)
}

func (m *MemoryStore) UpsertRate(from, to string, rate float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(from, to)
	r, ok := m.rates[key]
	if !ok {
		m.nextID++
		r = ExchangeRate{ID: m.nextID, From: strings.ToUpper(from), To: strings.ToUpper(to)}
	}
	r.Rate, r.UpdatedAt = rate, at.UTC()
	m.rates[key] = r
	return nil
}

func (m *MemoryStore) LatestRate(from, to string) (ExchangeRate, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rates[pairKey(from, to)]
	return r, ok, nil
}

func (m *MemoryStore) AppendHistory(btcUSD, btcEUR float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, model.HistoryRecord{
		ID:        int64(len(m.history) + 1),
		BTCUSD:    btcUSD,
		BTCEUR:    btcEUR,
		Timestamp: at.UTC(),
	})
	return nil
}

func (m *MemoryStore) HistorySince(since time.Time) ([]model.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.HistoryRecord
	for _, h := range m.history {
		if h.Timestamp.After(since) {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *MemoryStore) CountHistory() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.history)), nil
}

func (m *MemoryStore) Close() error { return nil }
