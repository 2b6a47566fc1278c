package rateserver

import (
	"context"
	"fmt"
	"log"
	"time"

	"VexlConverter/internal/collector"
	"VexlConverter/internal/store"
)

// RefreshJob pulls BTC/USD and BTC/EUR from a quote source, stores them as the
// latest rates and appends them to the history.
type RefreshJob struct {
	Source collector.QuoteFetcher
	Store  store.Store
	Now    func() time.Time
}

// NewRefreshJob creates a refresh job.
func NewRefreshJob(src collector.QuoteFetcher, st store.Store) *RefreshJob {
	return &RefreshJob{Source: src, Store: st, Now: time.Now}
}

// Run performs one refresh. History is only appended when both rates arrived.
func (j *RefreshJob) Run(ctx context.Context) error {
	log.Printf("[INFO] refreshing BTC prices from %s", j.Source.Name())
	quotes, err := j.Source.FetchRates(ctx, []string{"USD", "EUR"})
	if err != nil {
		return fmt.Errorf("fetch prices: %w", err)
	}

	now := j.Now()
	usd, haveUSD := quotes["USD"]
	eur, haveEUR := quotes["EUR"]
	if haveUSD {
		if err := j.Store.UpsertRate("BTC", "USD", usd.InexactFloat64(), now); err != nil {
			return err
		}
		log.Printf("[INFO] updated BTC/USD rate: %s", usd)
	}
	if haveEUR {
		if err := j.Store.UpsertRate("BTC", "EUR", eur.InexactFloat64(), now); err != nil {
			return err
		}
		log.Printf("[INFO] updated BTC/EUR rate: %s", eur)
	}
	if !haveUSD || !haveEUR {
		return fmt.Errorf("incomplete quote from %s: usd=%v eur=%v", j.Source.Name(), haveUSD, haveEUR)
	}

	if err := j.Store.AppendHistory(usd.InexactFloat64(), eur.InexactFloat64(), now); err != nil {
		return err
	}
	log.Printf("[INFO] saved to history: USD=$%s, EUR=€%s", usd, eur)
	return nil
}

// Task adapts Run to the scheduler, logging failures.
func (j *RefreshJob) Task(ctx context.Context) {
	if err := j.Run(ctx); err != nil {
		log.Printf("[ERROR] price refresh failed: %v", err)
	}
}
