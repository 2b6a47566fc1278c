// Package view renders the converter, the currency picker and the rate
// history as terminal text and SVG.
package view

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Money formats d with two decimals and thousands separators, prefixed by symbol.
func Money(symbol string, d decimal.Decimal) string {
	ac := accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}
	return ac.FormatMoneyDecimal(d)
}

// MoneyFloat is Money for float history values.
func MoneyFloat(symbol string, v float64) string {
	ac := accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}
	return ac.FormatMoneyFloat64(v)
}

// Number formats n with thousands separators and no decimals.
func Number(n int64) string {
	ac := accounting.Accounting{Precision: 0, Thousand: ","}
	return ac.FormatMoneyInt(int(n))
}
