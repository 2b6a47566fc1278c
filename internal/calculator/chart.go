package calculator

import (
	"strconv"
	"strings"
)

// Chart dimensions of the rate history line chart, in SVG user units.
const (
	ChartWidth   = 800
	ChartHeight  = 250
	ChartPadding = 40
)

// Point is one scaled data point of a line chart.
type Point struct {
	X, Y  float64
	Value float64
}

// ScalePoints maps values into the chart's drawing area. X spreads the values
// evenly from left to right; Y grows upwards from the series minimum. A flat
// series is drawn on the baseline.
func ScalePoints(values []float64) []Point {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	steps := float64(len(values) - 1)
	if steps == 0 {
		steps = 1
	}

	innerW := float64(ChartWidth - 2*ChartPadding)
	innerH := float64(ChartHeight - 2*ChartPadding)
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{
			X:     ChartPadding + float64(i)/steps*innerW,
			Y:     ChartHeight - ChartPadding - (v-lo)/span*innerH,
			Value: v,
		}
	}
	return points
}

// PathData builds the SVG path "M x y L x y ..." through the points.
func PathData(points []Point) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString("L ")
		}
		b.WriteString(FormatCoord(p.X))
		b.WriteByte(' ')
		b.WriteString(FormatCoord(p.Y))
	}
	return b.String()
}

// AreaPath closes the line path down to the baseline for the filled area.
func AreaPath(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	base := FormatCoord(ChartHeight - ChartPadding)
	last := points[len(points)-1]
	return PathData(points) + " L " + FormatCoord(last.X) + " " + base +
		" L " + FormatCoord(ChartPadding) + " " + base + " Z"
}

// FormatCoord prints a coordinate with at most two decimals.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(roundTo(v, 2), 'f', -1, 64)
}

func roundTo(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	if v < 0 {
		return -float64(int64(-v*p+0.5)) / p
	}
	return float64(int64(v*p+0.5)) / p
}
