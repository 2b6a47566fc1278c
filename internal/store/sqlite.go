package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"VexlConverter/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists rates to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the HTTP handlers read while the refresh job writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exchange_rate (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			from_currency TEXT NOT NULL,
			to_currency   TEXT NOT NULL,
			rate          REAL NOT NULL,
			updated_at    INTEGER NOT NULL,
			UNIQUE (from_currency, to_currency)
		)`,

		`CREATE TABLE IF NOT EXISTS rate_history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			btc_usd   REAL NOT NULL,
			btc_eur   REAL NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rate_history_ts ON rate_history(timestamp)`,
	}
	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) UpsertRate(from, to string, rate float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO exchange_rate (from_currency, to_currency, rate, updated_at)
		VALUES (?,?,?,?)
		ON CONFLICT (from_currency, to_currency)
		DO UPDATE SET rate = excluded.rate, updated_at = excluded.updated_at`,
		strings.ToUpper(from), strings.ToUpper(to), rate, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", from, to, err)
	}
	return nil
}

func (s *SQLiteStore) LatestRate(from, to string) (ExchangeRate, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var r ExchangeRate
	var updated int64
	err := s.db.QueryRow(`SELECT id, from_currency, to_currency, rate, updated_at
		FROM exchange_rate WHERE from_currency = ? AND to_currency = ?`,
		strings.ToUpper(from), strings.ToUpper(to),
	).Scan(&r.ID, &r.From, &r.To, &r.Rate, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return ExchangeRate{}, false, nil
	}
	if err != nil {
		return ExchangeRate{}, false, fmt.Errorf("query %s/%s: %w", from, to, err)
	}
	r.UpdatedAt = time.UnixMilli(updated).UTC()
	return r, true, nil
}

func (s *SQLiteStore) AppendHistory(btcUSD, btcEUR float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO rate_history (btc_usd, btc_eur, timestamp) VALUES (?,?,?)`,
		btcUSD, btcEUR, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) HistorySince(since time.Time) ([]model.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, btc_usd, btc_eur, timestamp FROM rate_history
		WHERE timestamp > ? ORDER BY timestamp ASC, id ASC`, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.HistoryRecord
	for rows.Next() {
		var h model.HistoryRecord
		var ts int64
		if err := rows.Scan(&h.ID, &h.BTCUSD, &h.BTCEUR, &ts); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		h.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CountHistory() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM rate_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
