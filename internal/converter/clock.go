package converter

import "time"

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules the debounce timer and stamps price updates.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
func (systemClock) Now() time.Time                            { return time.Now() }

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }
