package calculator

import (
	"errors"
	"math"

	"VexlConverter/internal/model"
)

// Stats summarises one rate series of a history window.
type Stats struct {
	Min     float64
	Max     float64
	Avg     float64
	Current float64
	Count   int
}

// CalculateStats scans the series of the given pair once and returns its
// minimum, maximum, mean and most recent value. Records must be sorted
// ascending by timestamp.
func CalculateStats(records []model.HistoryRecord, pair model.Pair) (Stats, error) {
	if len(records) == 0 {
		return Stats{}, errors.New("no history records provided")
	}
	s := Stats{
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
		Count: len(records),
	}
	sum := 0.0
	for _, r := range records {
		v := r.Value(pair)
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Avg = sum / float64(len(records))
	s.Current = records[len(records)-1].Value(pair)
	return s, nil
}

// RangePosition returns where current sits between low and high (0.0~1.0).
func RangePosition(current, low, high float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// ChangePercent returns the relative move from the first to the last value of
// the series, in percent.
func ChangePercent(records []model.HistoryRecord, pair model.Pair) (float64, error) {
	if len(records) < 2 {
		return 0, errors.New("not enough data for change calculation")
	}
	first := records[0].Value(pair)
	if first == 0 {
		return 0, errors.New("first value is zero")
	}
	last := records[len(records)-1].Value(pair)
	return (last - first) / first * 100, nil
}
