// Package converter turns keystrokes in the amount field into debounced backend
// conversions and keeps the display state, the extra-currency amounts and the
// field's focus in sync with the results.
//
// All state is owned by one event loop. Network calls run on their own
// goroutines and post their completion back to the loop. Every issued request
// carries a sequence number; a completion whose number is no longer the latest
// is discarded, so an older response can never overwrite a newer one.
package converter

import (
	"context"
	"log"
	"time"

	"VexlConverter/internal/collector"
	"VexlConverter/internal/currency"
	"VexlConverter/internal/eventloop"
	"VexlConverter/internal/model"

	"github.com/shopspring/decimal"
)

const (
	DefaultDebounce = 800 * time.Millisecond

	msgConversionFailed = "Conversion failed"
	msgPricesFailed     = "Failed to fetch prices"
	msgPricesTransport  = "Failed to fetch latest prices"
)

// Options wires a Pipeline to its collaborators.
type Options struct {
	Prices   collector.PriceSource
	Quotes   collector.QuoteFetcher
	Loop     *eventloop.Loop
	Input    Input
	Registry *currency.Registry
	Clock    Clock
	Debounce time.Duration
}

// Pipeline is the conversion state machine of one amount field.
type Pipeline struct {
	ctx      context.Context
	prices   collector.PriceSource
	quotes   collector.QuoteFetcher
	loop     *eventloop.Loop
	input    Input
	registry *currency.Registry
	clock    Clock
	debounce time.Duration
	onChange func(Snapshot)

	// Everything below is only touched on the loop.
	raw        string
	unit       model.Unit
	state      State
	loading    bool
	errMsg     string
	usd        decimal.NullDecimal
	eur        decimal.NullDecimal
	rates      model.Rates
	lastUpdate time.Time
	timer      Timer
	timerGen   uint64
	seq        uint64
}

// selection is the field's caret range captured before a request goes out.
type selection struct {
	start, end int
	ok         bool
}

// New creates a Pipeline. ctx bounds every network call it issues.
func New(ctx context.Context, opts Options) *Pipeline {
	p := &Pipeline{
		ctx:      ctx,
		prices:   opts.Prices,
		quotes:   opts.Quotes,
		loop:     opts.Loop,
		input:    opts.Input,
		registry: opts.Registry,
		clock:    opts.Clock,
		debounce: opts.Debounce,
		unit:     model.UnitBTC,
	}
	if p.input == nil {
		p.input = NewField()
	}
	if p.registry == nil {
		p.registry = currency.NewRegistry()
	}
	if p.clock == nil {
		p.clock = SystemClock()
	}
	if p.debounce <= 0 {
		p.debounce = DefaultDebounce
	}
	return p
}

// OnChange registers a render hook called on the loop after every state change.
// It must be set before the pipeline is used.
func (p *Pipeline) OnChange(fn func(Snapshot)) {
	p.onChange = fn
}

// Type applies one keystroke, given as the field's complete new value, and
// reports whether it was accepted.
func (p *Pipeline) Type(value string) bool {
	var accepted bool
	if err := p.loop.Call(func() { accepted = p.handleInput(value) }); err != nil {
		return false
	}
	return accepted
}

// ToggleUnit switches between BTC and satoshi display and returns the new unit.
func (p *Pipeline) ToggleUnit() model.Unit {
	var unit model.Unit
	p.loop.Call(func() { unit = p.toggleUnit() })
	return unit
}

// AddCurrency selects an extra currency from the catalog.
func (p *Pipeline) AddCurrency(code string) error {
	var err error
	if callErr := p.loop.Call(func() { err = p.addCurrency(code) }); callErr != nil {
		return callErr
	}
	return err
}

// RemoveCurrency drops an extra currency. It never issues a fetch.
func (p *Pipeline) RemoveCurrency(code string) bool {
	var removed bool
	p.loop.Call(func() {
		removed = p.registry.Remove(code)
		if removed {
			p.notify()
		}
	})
	return removed
}

// Snapshot returns a copy of the display state.
func (p *Pipeline) Snapshot() Snapshot {
	var s Snapshot
	p.loop.Call(func() { s = p.snapshot() })
	return s
}

// RefreshPrices fetches the latest BTC/USD and BTC/EUR rates on the calling
// goroutine and applies them on the loop.
func (p *Pipeline) RefreshPrices(ctx context.Context) {
	res, err := p.prices.LatestPrices(ctx)
	now := p.clock.Now()
	p.loop.Post(func() { p.applyPrices(res, err, now) })
}

func (p *Pipeline) applyPrices(res model.Result[model.PriceSnapshot], err error, at time.Time) {
	switch {
	case err != nil:
		log.Printf("[ERROR] fetch latest prices: %v", err)
		p.errMsg = msgPricesTransport
	case !res.OK():
		p.errMsg = res.MessageOr(msgPricesFailed)
	default:
		p.rates = res.Value().Rates()
		p.lastUpdate = at
		p.errMsg = ""
	}
	p.notify()
}

func (p *Pipeline) handleInput(value string) bool {
	if value == "" {
		p.stopTimer()
		p.invalidate()
		p.raw = ""
		p.clearOutputs()
		p.state = StateIdle
		p.notify()
		return true
	}
	if !ValidInput(p.unit, value) {
		return false
	}

	p.raw = value
	p.stopTimer()

	btc, ok := BTCValue(p.unit, value)
	if !ok || !btc.IsPositive() {
		p.invalidate()
		p.clearOutputs()
		p.state = StateIdle
		p.notify()
		return true
	}

	gen := p.timerGen
	p.timer = p.clock.AfterFunc(p.debounce, func() {
		p.loop.Post(func() { p.fire(gen, btc) })
	})
	p.state = StatePendingDebounce
	p.notify()
	return true
}

func (p *Pipeline) fire(gen uint64, btc decimal.Decimal) {
	if gen != p.timerGen || p.timer == nil {
		return
	}
	p.timer = nil
	p.issue(btc)
}

// issue sends a conversion stamped with a fresh sequence number.
func (p *Pipeline) issue(btc decimal.Decimal) {
	p.stopTimer()
	p.seq++
	seq := p.seq

	var sel selection
	if p.input.Focused() {
		start, end := p.input.Selection()
		sel = selection{start: start, end: end, ok: true}
	}

	p.state = StateInFlight
	p.loading = true
	p.notify()

	log.Printf("[INFO] converting %s BTC (request #%d)", btc, seq)
	go func() {
		res, err := p.prices.Convert(p.ctx, btc)
		p.loop.Post(func() { p.onConverted(seq, btc, sel, res, err) })
	}()
}

func (p *Pipeline) onConverted(seq uint64, btc decimal.Decimal, sel selection, res model.Result[model.Conversion], err error) {
	if seq != p.seq {
		log.Printf("[INFO] discarding stale conversion #%d (latest #%d)", seq, p.seq)
		return
	}
	if err != nil {
		log.Printf("[ERROR] convert %s BTC: %v", btc, err)
		p.fail(msgConversionFailed)
		return
	}
	if !res.OK() {
		p.fail(res.MessageOr(msgConversionFailed))
		return
	}

	conv := res.Value()
	p.usd = decimal.NewNullDecimal(conv.USDAmount)
	p.eur = decimal.NewNullDecimal(conv.EURAmount)
	p.rates = conv.Rates
	p.errMsg = ""

	if p.registry.Len() == 0 {
		p.finish(sel)
		return
	}

	codes := p.registry.Codes()
	p.notify()
	go func() {
		quotes, err := p.quotes.FetchRates(p.ctx, codes)
		p.loop.Post(func() { p.onQuotes(seq, btc, sel, codes, quotes, err) })
	}()
}

func (p *Pipeline) onQuotes(seq uint64, btc decimal.Decimal, sel selection, codes []string, quotes map[string]decimal.Decimal, err error) {
	if seq != p.seq {
		log.Printf("[INFO] discarding stale additional rates for #%d (latest #%d)", seq, p.seq)
		return
	}
	if err != nil {
		log.Printf("[WARN] fetch additional rates via %s: %v", p.quotes.Name(), err)
	} else {
		p.registry.ApplyQuotes(codes, quotes, btc)
	}
	p.finish(sel)
}

// finish marks the round trip applied and, on the next tick, gives the field
// back its focus and caret unless it already holds focus.
func (p *Pipeline) finish(sel selection) {
	p.loading = false
	if p.timer == nil {
		p.state = StateApplied
	}
	p.notify()

	p.loop.Post(func() {
		if p.input.Focused() {
			return
		}
		p.input.Focus()
		if sel.ok {
			p.input.SetSelection(sel.start, sel.end)
		}
	})
}

func (p *Pipeline) fail(msg string) {
	p.clearOutputs()
	p.errMsg = msg
	p.loading = false
	if p.timer == nil {
		p.state = StateFailed
	}
	p.notify()

	p.loop.Post(func() { p.input.Focus() })
}

func (p *Pipeline) toggleUnit() model.Unit {
	if p.raw != "" {
		p.raw = Reexpress(p.raw, p.unit)
	}
	p.unit = p.unit.Other()
	p.notify()

	p.loop.Post(func() {
		p.input.Focus()
		p.input.SelectAll()
	})
	return p.unit
}

func (p *Pipeline) addCurrency(code string) error {
	if _, err := p.registry.Add(code); err != nil {
		return err
	}
	if btc, ok := BTCValue(p.unit, p.raw); ok && btc.IsPositive() {
		p.issue(btc)
		return nil
	}
	p.notify()
	return nil
}

// invalidate makes any in-flight completion stale.
func (p *Pipeline) invalidate() {
	p.seq++
	p.loading = false
}

func (p *Pipeline) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.timerGen++
}

func (p *Pipeline) clearOutputs() {
	p.usd = decimal.NullDecimal{}
	p.eur = decimal.NullDecimal{}
	p.registry.ClearAmounts()
}

func (p *Pipeline) notify() {
	p.input.SetValue(p.raw)
	if p.onChange != nil {
		p.onChange(p.snapshot())
	}
}

func (p *Pipeline) snapshot() Snapshot {
	return Snapshot{
		Raw:        p.raw,
		Unit:       p.unit,
		State:      p.state,
		Loading:    p.loading,
		Error:      p.errMsg,
		USD:        p.usd,
		EUR:        p.eur,
		Rates:      p.rates,
		LastUpdate: p.lastUpdate,
		Selected:   p.registry.Selected(),
		Available:  p.registry.Available(),
		Seq:        p.seq,
	}
}
