package view

import (
	"fmt"
	"strings"

	"VexlConverter/internal/calculator"
	"VexlConverter/internal/model"
)

// Series colors of the history charts.
const (
	ColorUSD = "#00FF00"
	ColorEUR = "#FC0377"
)

// RenderChartSVG draws one pair of the history as an SVG line chart with a
// gradient-filled area and a marker per data point.
func RenderChartSVG(records []model.HistoryRecord, pair model.Pair, label, color string) string {
	if len(records) == 0 {
		return `<div class="chart-empty">No data available</div>`
	}
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Value(pair)
	}
	points := calculator.ScalePoints(values)

	const (
		w   = calculator.ChartWidth
		h   = calculator.ChartHeight
		pad = calculator.ChartPadding
	)
	id := "gradient-" + strings.NewReplacer("/", "-", " ", "-").Replace(label)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" preserveAspectRatio="xMidYMid meet">`, w, h)
	b.WriteString("\n")
	fmt.Fprintf(&b, `  <title>%s</title>`+"\n", label)
	fmt.Fprintf(&b, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="rgba(255,255,255,0.1)" stroke-width="2"/>`+"\n",
		pad, h-pad, w-pad, h-pad)
	fmt.Fprintf(&b, `  <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="rgba(255,255,255,0.05)" stroke-width="1" stroke-dasharray="5,5"/>`+"\n",
		pad, h/2, w-pad, h/2)
	fmt.Fprintf(&b, `  <defs><linearGradient id="%s" x1="0%%" y1="0%%" x2="0%%" y2="100%%">`+
		`<stop offset="0%%" stop-color="%s" stop-opacity="0.3"/>`+
		`<stop offset="100%%" stop-color="%s" stop-opacity="0.05"/></linearGradient></defs>`+"\n", id, color, color)
	fmt.Fprintf(&b, `  <path d="%s" fill="url(#%s)"/>`+"\n", calculator.AreaPath(points), id)
	fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-width="3" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
		calculator.PathData(points), color)
	for _, p := range points {
		fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="4" fill="%s" opacity="0.7"/>`+"\n",
			calculator.FormatCoord(p.X), calculator.FormatCoord(p.Y), color)
	}
	b.WriteString("</svg>\n")
	return b.String()
}
