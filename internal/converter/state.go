package converter

import (
	"time"

	"VexlConverter/internal/model"

	"github.com/shopspring/decimal"
)

// State is the conversion request state of the amount field.
type State int

const (
	StateIdle State = iota
	StatePendingDebounce
	StateInFlight
	StateApplied
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StatePendingDebounce:
		return "PENDING_DEBOUNCE"
	case StateInFlight:
		return "IN_FLIGHT"
	case StateApplied:
		return "APPLIED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Snapshot is a copy of the converter display state.
type Snapshot struct {
	Raw        string
	Unit       model.Unit
	State      State
	Loading    bool
	Error      string
	USD        decimal.NullDecimal
	EUR        decimal.NullDecimal
	Rates      model.Rates
	LastUpdate time.Time
	Selected   []model.Currency
	Available  []model.Currency
	// Seq is the sequence number of the latest issued conversion.
	Seq uint64
}
