package model

import "github.com/shopspring/decimal"

// Currency is a selectable fiat currency. Rate and Amount are filled in
// asynchronously once a secondary rate fetch succeeds.
type Currency struct {
	Code   string
	Symbol string
	Name   string
	Rate   decimal.Decimal
	Amount decimal.NullDecimal
}
