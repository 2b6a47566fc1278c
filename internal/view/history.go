package view

import (
	"fmt"
	"strings"
	"time"

	"VexlConverter/internal/calculator"
	"VexlConverter/internal/history"
	"VexlConverter/internal/model"
)

// FormatHistory renders the history panel: per-pair statistics, the number
// of data points and the covered time range.
func FormatHistory(p history.Panel) string {
	var b strings.Builder
	b.WriteString("Rate History\n")
	b.WriteString(fmt.Sprintf("Last %d Hours of BTC Exchange Rates\n\n", p.RangeHours))

	if p.Loading && !p.HasData() {
		return b.String() + "Loading rate history...\n"
	}
	if p.Error != "" {
		b.WriteString(fmt.Sprintf("! %s\n\n", p.Error))
	}
	if !p.HasData() {
		b.WriteString("No historical data available yet.\n")
		b.WriteString("Data is collected automatically every 5 minutes. Check back soon!\n")
		return b.String()
	}

	writeStats(&b, p, model.PairUSD, "$")
	writeStats(&b, p, model.PairEUR, "€")

	b.WriteString(fmt.Sprintf("Data points collected: %d", len(p.Records)))
	if p.Total > 0 {
		b.WriteString(fmt.Sprintf(" (%s stored)", Number(p.Total)))
	}
	b.WriteString("\n")
	first, last := p.Records[0].Timestamp, p.Records[len(p.Records)-1].Timestamp
	b.WriteString(fmt.Sprintf("Time range: %s -> %s\n",
		first.Local().Format(time.DateTime), last.Local().Format(time.DateTime)))
	if p.Refreshing {
		b.WriteString("Refreshing...\n")
	}
	return b.String()
}

func writeStats(b *strings.Builder, p history.Panel, pair model.Pair, symbol string) {
	s := p.Stats(pair)
	b.WriteString(fmt.Sprintf("%s\n", pair))
	b.WriteString(fmt.Sprintf("  Min %s  Max %s  Avg %s  Current %s\n",
		MoneyFloat(symbol, s.Min), MoneyFloat(symbol, s.Max),
		MoneyFloat(symbol, s.Avg), MoneyFloat(symbol, s.Current)))
	if pos, err := calculator.RangePosition(s.Current, s.Min, s.Max); err == nil {
		b.WriteString(fmt.Sprintf("  Position in range: %.0f%%", pos*100))
	}
	if chg, err := calculator.ChangePercent(p.Records, pair); err == nil {
		b.WriteString(fmt.Sprintf("  Change: %+.2f%%", chg))
	}
	b.WriteString("\n\n")
}
