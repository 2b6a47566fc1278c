package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rates holds the BTC price in the two primary fiat currencies.
type Rates struct {
	BTCUSD decimal.Decimal `json:"btc_usd"`
	BTCEUR decimal.Decimal `json:"btc_eur"`
}

// IsZero reports whether no rate has been received yet.
func (r Rates) IsZero() bool {
	return r.BTCUSD.IsZero() && r.BTCEUR.IsZero()
}

// PriceSnapshot is the latest stored price row served by the backend.
type PriceSnapshot struct {
	ID        int64           `json:"id"`
	BTCUSD    decimal.Decimal `json:"btc_usd"`
	BTCEUR    decimal.Decimal `json:"btc_eur"`
	Timestamp time.Time       `json:"timestamp"`
}

// Rates returns the snapshot's rate pair.
func (p PriceSnapshot) Rates() Rates {
	return Rates{BTCUSD: p.BTCUSD, BTCEUR: p.BTCEUR}
}

// Conversion is the outcome of one completed backend convert round trip.
type Conversion struct {
	BTCAmount decimal.Decimal `json:"btc_amount"`
	USDAmount decimal.Decimal `json:"usd_amount"`
	EURAmount decimal.Decimal `json:"eur_amount"`
	Rates     Rates           `json:"rates"`
	Timestamp time.Time       `json:"timestamp"`
}

// HistoryRecord is one point of the server-side rate history.
type HistoryRecord struct {
	ID        int64     `json:"id"`
	BTCUSD    float64   `json:"btc_usd"`
	BTCEUR    float64   `json:"btc_eur"`
	Timestamp time.Time `json:"timestamp"`
}

// Pair selects one series out of a history sequence.
type Pair string

const (
	PairUSD Pair = "BTC/USD"
	PairEUR Pair = "BTC/EUR"
)

// Value returns the record's rate for the given pair.
func (h HistoryRecord) Value(p Pair) float64 {
	if p == PairEUR {
		return h.BTCEUR
	}
	return h.BTCUSD
}

// Health is the backend liveness payload.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Healthy reports whether the backend declared itself healthy.
func (h Health) Healthy() bool { return h.Status == "healthy" }
