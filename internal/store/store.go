// Package store persists the dev rate server's latest exchange rates and the
// rate history it serves.
package store

import (
	"time"

	"VexlConverter/internal/model"
)

// ExchangeRate is the latest known rate of one currency pair.
type ExchangeRate struct {
	ID        int64
	From      string
	To        string
	Rate      float64
	UpdatedAt time.Time
}

// Store persists rates for the dev server.
type Store interface {
	// UpsertRate replaces the stored rate of a pair.
	UpsertRate(from, to string, rate float64, at time.Time) error
	// LatestRate returns the stored rate of a pair; ok is false when none exists.
	LatestRate(from, to string) (rate ExchangeRate, ok bool, err error)
	AppendHistory(btcUSD, btcEUR float64, at time.Time) error
	// HistorySince returns records newer than since, oldest first.
	HistorySince(since time.Time) ([]model.HistoryRecord, error)
	CountHistory() (int64, error)
	Close() error
}
