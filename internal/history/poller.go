// Package history keeps the rate history panel: periodic and manual fetches of
// the server-side history, sorted and summarised for rendering.
package history

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"VexlConverter/internal/calculator"
	"VexlConverter/internal/collector"
	"VexlConverter/internal/model"
)

const (
	DefaultRangeHours = 24

	msgNoData     = "No data available"
	msgLoadFailed = "Failed to load history"
)

// ErrRefreshInFlight is returned by Refresh while the previous manual refresh
// has not completed.
var ErrRefreshInFlight = errors.New("history refresh already in flight")

// Panel is a rendering copy of the history state.
type Panel struct {
	Records    []model.HistoryRecord
	USD        calculator.Stats
	EUR        calculator.Stats
	Total      int64
	Loading    bool
	Refreshing bool
	Error      string
	UpdatedAt  time.Time
	RangeHours int
}

// HasData reports whether any history point is available.
func (p Panel) HasData() bool { return len(p.Records) > 0 }

// Stats returns the summary of the requested pair.
func (p Panel) Stats(pair model.Pair) calculator.Stats {
	if pair == model.PairEUR {
		return p.EUR
	}
	return p.USD
}

// Poller fetches history from the backend. Timer-driven polls and manual
// refreshes may overlap; whichever fetch completes last determines the panel.
type Poller struct {
	src        collector.HistorySource
	rangeHours int
	now        func() time.Time

	mu         sync.Mutex
	records    []model.HistoryRecord
	usd, eur   calculator.Stats
	total      int64
	polling    int
	refreshing bool
	errMsg     string
	updatedAt  time.Time
	onChange   func(Panel)
}

// NewPoller creates a poller for the last rangeHours hours of history.
func NewPoller(src collector.HistorySource, rangeHours int) *Poller {
	if rangeHours <= 0 {
		rangeHours = DefaultRangeHours
	}
	return &Poller{src: src, rangeHours: rangeHours, now: time.Now}
}

// OnChange registers a hook called after every completed fetch.
func (p *Poller) OnChange(fn func(Panel)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Poll runs one timer-driven fetch. It is called once on start and then on
// every history interval.
func (p *Poller) Poll(ctx context.Context) {
	p.mu.Lock()
	p.polling++
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.polling--
		p.mu.Unlock()
	}()
	p.fetch(ctx)
}

// Refresh runs one manual fetch. Only one manual refresh may be outstanding;
// a timer-driven poll in flight does not block it.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.refreshing {
		p.mu.Unlock()
		return ErrRefreshInFlight
	}
	p.refreshing = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.refreshing = false
		p.mu.Unlock()
	}()
	p.fetch(ctx)
	return nil
}

// Panel returns a copy of the current state.
func (p *Poller) Panel() Panel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panelLocked()
}

func (p *Poller) fetch(ctx context.Context) {
	res, err := p.src.History(ctx, p.rangeHours)

	var total int64
	haveTotal := false
	if err == nil && res.OK() {
		t, terr := p.src.HistoryTotal(ctx)
		switch {
		case terr != nil:
			log.Printf("[WARN] fetch history total: %v", terr)
		case !t.OK():
			log.Printf("[WARN] fetch history total: %s", t.MessageOr("no total"))
		default:
			total, haveTotal = t.Value(), true
		}
	}

	p.mu.Lock()
	switch {
	case err != nil:
		log.Printf("[ERROR] fetch history: %v", err)
		p.errMsg = msgLoadFailed
	case !res.OK():
		p.errMsg = res.MessageOr(msgNoData)
	default:
		p.apply(res.Value())
		if haveTotal {
			p.total = total
		}
		p.errMsg = ""
		p.updatedAt = p.now()
	}
	panel := p.panelLocked()
	hook := p.onChange
	p.mu.Unlock()

	if hook != nil {
		hook(panel)
	}
}

// apply replaces the history with records sorted ascending by timestamp.
func (p *Poller) apply(records []model.HistoryRecord) {
	sorted := make([]model.HistoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	p.records = sorted
	p.usd, p.eur = calculator.Stats{}, calculator.Stats{}
	if len(sorted) == 0 {
		return
	}
	p.usd, _ = calculator.CalculateStats(sorted, model.PairUSD)
	p.eur, _ = calculator.CalculateStats(sorted, model.PairEUR)
}

func (p *Poller) panelLocked() Panel {
	records := make([]model.HistoryRecord, len(p.records))
	copy(records, p.records)
	return Panel{
		Records:    records,
		USD:        p.usd,
		EUR:        p.eur,
		Total:      p.total,
		Loading:    p.polling > 0 || p.refreshing,
		Refreshing: p.refreshing,
		Error:      p.errMsg,
		UpdatedAt:  p.updatedAt,
		RangeHours: p.rangeHours,
	}
}
