package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"VexlConverter/internal/model"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   int
	hours   []int
	gate    chan struct{}
	records []model.HistoryRecord
	soft    string
	err     error
	total   int64
}

func (f *fakeSource) History(ctx context.Context, rangeHours int) (model.Result[[]model.HistoryRecord], error) {
	f.mu.Lock()
	f.calls++
	f.hours = append(f.hours, rangeHours)
	gate, records, soft, err := f.gate, f.records, f.soft, f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return model.Result[[]model.HistoryRecord]{}, err
	}
	if soft != "" || records == nil {
		return model.Fail[[]model.HistoryRecord](soft), nil
	}
	return model.Ok(records), nil
}

func (f *fakeSource) HistoryTotal(context.Context) (model.Result[int64], error) {
	return model.Ok(f.total), nil
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func record(id int64, usd float64, offset time.Duration) model.HistoryRecord {
	return model.HistoryRecord{ID: id, BTCUSD: usd, BTCEUR: usd - 10, Timestamp: t0.Add(offset)}
}

func TestPoller_SortsAndSummarises(t *testing.T) {
	src := &fakeSource{
		total: 288,
		records: []model.HistoryRecord{
			record(3, 300, 10*time.Minute),
			record(1, 100, 0),
			record(2, 200, 5*time.Minute),
		},
	}
	p := NewPoller(src, 0)
	p.Poll(context.Background())

	panel := p.Panel()
	if !panel.HasData() || len(panel.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(panel.Records))
	}
	for i, r := range panel.Records {
		if r.ID != int64(i+1) {
			t.Errorf("position %d holds record %d; expected ascending timestamps", i, r.ID)
		}
	}
	usd := panel.Stats(model.PairUSD)
	if usd.Min != 100 || usd.Max != 300 || usd.Avg != 200 || usd.Current != 300 {
		t.Errorf("unexpected USD stats: %+v", usd)
	}
	if eur := panel.Stats(model.PairEUR); eur.Current != 290 {
		t.Errorf("unexpected EUR current: %v", eur.Current)
	}
	if panel.Total != 288 {
		t.Errorf("expected total 288, got %d", panel.Total)
	}
	if panel.Error != "" || panel.Loading {
		t.Errorf("unexpected error=%q loading=%v", panel.Error, panel.Loading)
	}
	if src.hours[0] != DefaultRangeHours {
		t.Errorf("expected default range of %d hours, got %d", DefaultRangeHours, src.hours[0])
	}
}

func TestPoller_FailureKeepsPriorHistory(t *testing.T) {
	tests := []struct {
		name    string
		soft    string
		err     error
		wantMsg string
	}{
		{"server message", "History unavailable", nil, "History unavailable"},
		{"no data", "", nil, "No data available"},
		{"transport", "", errors.New("connection refused"), "Failed to load history"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{records: []model.HistoryRecord{record(1, 100, 0)}}
			p := NewPoller(src, 24)
			p.Poll(context.Background())

			src.mu.Lock()
			src.records, src.soft, src.err = nil, tt.soft, tt.err
			src.mu.Unlock()
			p.Poll(context.Background())

			panel := p.Panel()
			if panel.Error != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, panel.Error)
			}
			if len(panel.Records) != 1 {
				t.Errorf("prior history should be kept, got %d records", len(panel.Records))
			}
		})
	}
}

func TestPoller_ManualRefreshGuard(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{gate: gate, records: []model.HistoryRecord{record(1, 100, 0)}}
	p := NewPoller(src, 24)

	done := make(chan error, 1)
	go func() { done <- p.Refresh(context.Background()) }()
	waitCalls(t, src, 1)

	if err := p.Refresh(context.Background()); !errors.Is(err, ErrRefreshInFlight) {
		t.Errorf("expected ErrRefreshInFlight, got %v", err)
	}
	if !p.Panel().Refreshing {
		t.Error("panel should report the manual refresh")
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("refresh: %v", err)
	}
	src.mu.Lock()
	src.gate = nil
	src.mu.Unlock()
	if err := p.Refresh(context.Background()); err != nil {
		t.Errorf("refresh after completion should be allowed, got %v", err)
	}
}

func TestPoller_TimerPollDoesNotBlockManualRefresh(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{gate: gate, records: []model.HistoryRecord{record(1, 100, 0)}}
	p := NewPoller(src, 24)

	polled := make(chan struct{})
	go func() {
		p.Poll(context.Background())
		close(polled)
	}()
	waitCalls(t, src, 1)
	if !p.Panel().Loading {
		t.Error("panel should be loading during a timer poll")
	}

	refreshed := make(chan error, 1)
	go func() { refreshed <- p.Refresh(context.Background()) }()
	waitCalls(t, src, 2)

	close(gate)
	<-polled
	if err := <-refreshed; err != nil {
		t.Errorf("manual refresh should run alongside a timer poll, got %v", err)
	}
	if p.Panel().Loading {
		t.Error("loading should clear once both fetches land")
	}
}

func TestPoller_OnChange(t *testing.T) {
	src := &fakeSource{records: []model.HistoryRecord{record(1, 100, 0)}}
	p := NewPoller(src, 6)
	fixed := t0.Add(time.Hour)
	p.now = func() time.Time { return fixed }

	var got []Panel
	p.OnChange(func(panel Panel) { got = append(got, panel) })
	p.Poll(context.Background())

	if len(got) != 1 {
		t.Fatalf("expected one change notification, got %d", len(got))
	}
	if !got[0].UpdatedAt.Equal(fixed) || got[0].RangeHours != 6 {
		t.Errorf("unexpected panel: %+v", got[0])
	}
}

func waitCalls(t *testing.T, src *fakeSource, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for src.Calls() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d history calls", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
