package view

import (
	"fmt"
	"strings"
	"time"

	"VexlConverter/internal/converter"
	"VexlConverter/internal/model"

	"github.com/shopspring/decimal"
)

const placeholder = "-"

// FormatConverter renders the converter panel.
func FormatConverter(s converter.Snapshot) string {
	var b strings.Builder
	b.WriteString("Vexl Converter\n\n")

	if s.Error != "" {
		b.WriteString(fmt.Sprintf("! %s\n\n", s.Error))
	}

	value := s.Raw
	if value == "" {
		value = placeholder
	}
	b.WriteString(fmt.Sprintf("Enter %s Amount: %s\n", s.Unit, value))
	b.WriteString(fmt.Sprintf("  1 BTC = %s satoshis\n\n", Number(model.SatsPerBTC)))

	writeOutput(&b, "$", "USD Value", s.USD, s.Rates.BTCUSD)
	writeOutput(&b, "€", "EUR Value", s.EUR, s.Rates.BTCEUR)
	for _, c := range s.Selected {
		writeOutput(&b, c.Symbol, fmt.Sprintf("%s (%s)", c.Name, c.Code), c.Amount, c.Rate)
	}

	if s.Loading {
		b.WriteString("\nConverting...\n")
	}
	if !s.LastUpdate.IsZero() {
		b.WriteString(fmt.Sprintf("\nLast updated: %s\n", s.LastUpdate.Local().Format(time.TimeOnly)))
	}
	return b.String()
}

func writeOutput(b *strings.Builder, symbol, label string, amount decimal.NullDecimal, rate decimal.Decimal) {
	value := placeholder
	if amount.Valid {
		value = amount.Decimal.StringFixed(2)
	}
	b.WriteString(fmt.Sprintf("%-3s %-28s %s\n", symbol, label, value))
	if rate.IsPositive() {
		b.WriteString(fmt.Sprintf("    1 BTC = %s\n", Money(symbol, rate)))
	}
}

// FormatPicker renders the pick-list of currencies that can still be added.
func FormatPicker(available []model.Currency) string {
	if len(available) == 0 {
		return "All currencies are already selected.\n"
	}
	var b strings.Builder
	b.WriteString("Select Currency (/add CODE)\n")
	for _, c := range available {
		b.WriteString(fmt.Sprintf("  %-4s %-3s %s\n", c.Symbol, c.Code, c.Name))
	}
	return b.String()
}
