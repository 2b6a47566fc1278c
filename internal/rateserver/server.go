// Package rateserver is a development stand-in for the converter backend. It
// serves the REST surface the client consumes from a local store that a
// scheduled job keeps filled with CoinGecko prices.
package rateserver

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"VexlConverter/internal/store"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const (
	Version = "0.0.1"

	msgAmountNotPositive = "BTC amount must be greater than 0"
	msgInvalidAmount     = "Invalid BTC amount"
	msgNoPriceData       = "No price data available"
	msgNoHistory         = "No rate history available yet. Data will be collected every 5 minutes."
)

// SupportedCurrencies is the fixed list served by /api/currencies.
var SupportedCurrencies = []string{"BTC", "ETH", "LTC", "XMR", "EUR", "USD"}

// Server holds the HTTP handlers of the dev backend.
type Server struct {
	Store store.Store
	Now   func() time.Time
}

// NewServer creates a server backed by st.
func NewServer(st store.Store) *Server {
	return &Server{Store: st, Now: time.Now}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/currencies", s.currencies).Methods(http.MethodGet)
	api.HandleFunc("/prices/latest", s.latestPrices).Methods(http.MethodGet)
	api.HandleFunc("/convert", s.convert).Methods(http.MethodPost)
	api.HandleFunc("/history/last-24h", s.last24h).Methods(http.MethodGet)
	api.HandleFunc("/history/rate-history", s.rateHistory).Methods(http.MethodGet)
	api.HandleFunc("/history/total", s.total).Methods(http.MethodGet)
	return r
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ratesPayload struct {
	BTCUSD float64 `json:"btc_usd"`
	BTCEUR float64 `json:"btc_eur"`
}

type latestPayload struct {
	ID        int64     `json:"id"`
	BTCUSD    float64   `json:"btc_usd"`
	BTCEUR    float64   `json:"btc_eur"`
	Timestamp time.Time `json:"timestamp"`
}

type conversionPayload struct {
	BTCAmount float64      `json:"btc_amount"`
	USDAmount float64      `json:"usd_amount"`
	EURAmount float64      `json:"eur_amount"`
	Rates     ratesPayload `json:"rates"`
	Timestamp time.Time    `json:"timestamp"`
}

// convertRequest accepts btc_amount as a JSON number or a numeric string.
type convertRequest struct {
	BTCAmount decimal.NullDecimal `json:"btc_amount"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "version": Version})
}

func (s *Server) currencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"currencies": SupportedCurrencies})
}

func (s *Server) latestPrices(w http.ResponseWriter, r *http.Request) {
	usd, eur, ok, err := s.latestPair()
	if err != nil {
		log.Printf("[ERROR] get latest prices: %v", err)
		writeJSON(w, http.StatusOK, envelope{Error: err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, envelope{Error: msgNoPriceData})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: latestPayload{
		ID:        usd.ID,
		BTCUSD:    usd.Rate,
		BTCEUR:    eur.Rate,
		Timestamp: usd.UpdatedAt,
	}})
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[WARN] decode convert request: %v", err)
		writeJSON(w, http.StatusOK, envelope{Error: msgInvalidAmount})
		return
	}
	btc := req.BTCAmount.Decimal
	if !req.BTCAmount.Valid || !btc.IsPositive() {
		writeJSON(w, http.StatusOK, envelope{Error: msgAmountNotPositive})
		return
	}

	usd, eur, ok, err := s.latestPair()
	if err != nil {
		log.Printf("[ERROR] convert: %v", err)
		writeJSON(w, http.StatusOK, envelope{Error: err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, envelope{Error: msgNoPriceData})
		return
	}

	usdAmount := btc.Mul(decimal.NewFromFloat(usd.Rate)).Round(2)
	eurAmount := btc.Mul(decimal.NewFromFloat(eur.Rate)).Round(2)
	log.Printf("[INFO] converted %s BTC to $%s and €%s", btc, usdAmount, eurAmount)

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: conversionPayload{
		BTCAmount: btc.InexactFloat64(),
		USDAmount: usdAmount.InexactFloat64(),
		EURAmount: eurAmount.InexactFloat64(),
		Rates:     ratesPayload{BTCUSD: usd.Rate, BTCEUR: eur.Rate},
		Timestamp: usd.UpdatedAt,
	}})
}

func (s *Server) last24h(w http.ResponseWriter, r *http.Request) {
	s.writeHistory(w, 24)
}

func (s *Server) rateHistory(w http.ResponseWriter, r *http.Request) {
	hours := 24
	if v := r.URL.Query().Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "hours must be a positive integer", http.StatusBadRequest)
			return
		}
		hours = n
	}
	s.writeHistory(w, hours)
}

func (s *Server) writeHistory(w http.ResponseWriter, hours int) {
	since := s.Now().Add(-time.Duration(hours) * time.Hour)
	records, err := s.Store.HistorySince(since)
	if err != nil {
		log.Printf("[ERROR] retrieve rate history: %v", err)
		writeJSON(w, http.StatusOK, envelope{Error: err.Error()})
		return
	}
	if len(records) == 0 {
		writeJSON(w, http.StatusOK, envelope{Error: msgNoHistory})
		return
	}
	log.Printf("[INFO] retrieved %d rate history records from last %d hours", len(records), hours)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: records})
}

func (s *Server) total(w http.ResponseWriter, r *http.Request) {
	n, err := s.Store.CountHistory()
	if err != nil {
		log.Printf("[ERROR] count rate history: %v", err)
		writeJSON(w, http.StatusOK, envelope{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "total": n})
}

func (s *Server) latestPair() (usd, eur store.ExchangeRate, ok bool, err error) {
	usd, okUSD, err := s.Store.LatestRate("BTC", "USD")
	if err != nil {
		return usd, eur, false, err
	}
	eur, okEUR, err := s.Store.LatestRate("BTC", "EUR")
	if err != nil {
		return usd, eur, false, err
	}
	return usd, eur, okUSD && okEUR, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[INFO] %s %s (request %s) %s", r.Method, r.URL.RequestURI(),
			r.Header.Get("X-Request-ID"), time.Since(start).Round(time.Microsecond))
	})
}
