package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "rates.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"sqlite": sq,
		"memory": NewMemoryStore(),
	}
}

func TestStore_UpsertRate(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.LatestRate("BTC", "USD"); err != nil || ok {
				t.Fatalf("expected no rate yet, got ok=%v err=%v", ok, err)
			}
			if err := s.UpsertRate("btc", "usd", 50000, at); err != nil {
				t.Fatalf("upsert: %v", err)
			}
			if err := s.UpsertRate("BTC", "USD", 51000, at.Add(5*time.Minute)); err != nil {
				t.Fatalf("upsert: %v", err)
			}
			r, ok, err := s.LatestRate("BTC", "usd")
			if err != nil || !ok {
				t.Fatalf("latest: ok=%v err=%v", ok, err)
			}
			if r.Rate != 51000 || r.From != "BTC" || r.To != "USD" {
				t.Errorf("unexpected rate: %+v", r)
			}
			if !r.UpdatedAt.Equal(at.Add(5 * time.Minute)) {
				t.Errorf("unexpected update time: %v", r.UpdatedAt)
			}
		})
	}
}

func TestStore_History(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			points := []time.Duration{-30 * time.Hour, -2 * time.Hour, -1 * time.Hour}
			for i, off := range points {
				if err := s.AppendHistory(float64(100*(i+1)), float64(90*(i+1)), now.Add(off)); err != nil {
					t.Fatalf("append: %v", err)
				}
			}

			got, err := s.HistorySince(now.Add(-24 * time.Hour))
			if err != nil {
				t.Fatalf("history: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("expected 2 records in the last 24h, got %d", len(got))
			}
			if got[0].BTCUSD != 200 || got[1].BTCUSD != 300 {
				t.Errorf("expected ascending order, got %+v", got)
			}
			if !got[1].Timestamp.Equal(now.Add(-time.Hour)) {
				t.Errorf("unexpected timestamp %v", got[1].Timestamp)
			}

			n, err := s.CountHistory()
			if err != nil || n != 3 {
				t.Errorf("expected 3 records in total, got %d (%v)", n, err)
			}
		})
	}
}
