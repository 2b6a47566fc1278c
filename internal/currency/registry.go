package currency

import (
	"errors"
	"strings"

	"VexlConverter/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCurrency = errors.New("currency not in catalog")
	ErrAlreadySelected = errors.New("currency already selected")
)

// Registry is the user's ordered selection of extra currencies.
// Insertion order is display order and codes are unique. It is not safe for
// concurrent use; the conversion pipeline confines it to its event loop.
type Registry struct {
	selected []model.Currency
}

// NewRegistry creates an empty selection.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a catalog currency to the selection.
func (r *Registry) Add(code string) (model.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c, ok := Lookup(code)
	if !ok {
		return model.Currency{}, ErrUnknownCurrency
	}
	if r.index(code) >= 0 {
		return model.Currency{}, ErrAlreadySelected
	}
	r.selected = append(r.selected, c)
	return c, nil
}

// Remove drops a currency from the selection and reports whether it was present.
func (r *Registry) Remove(code string) bool {
	i := r.index(strings.ToUpper(strings.TrimSpace(code)))
	if i < 0 {
		return false
	}
	r.selected = append(r.selected[:i], r.selected[i+1:]...)
	return true
}

func (r *Registry) Len() int { return len(r.selected) }

// Selected returns a copy of the selection in display order.
func (r *Registry) Selected() []model.Currency {
	out := make([]model.Currency, len(r.selected))
	copy(out, r.selected)
	return out
}

// Codes returns the selected codes in display order.
func (r *Registry) Codes() []string {
	codes := make([]string, len(r.selected))
	for i, c := range r.selected {
		codes[i] = c.Code
	}
	return codes
}

// Available returns the catalog minus the current selection.
func (r *Registry) Available() []model.Currency {
	out := make([]model.Currency, 0, len(Catalog))
	for _, c := range Catalog {
		if r.index(c.Code) < 0 {
			out = append(out, c)
		}
	}
	return out
}

// ApplyQuotes sets rate and amount (rate × btc, 2 decimals) on each of the given
// codes that is still selected. A code without a quote gets a zero rate.
func (r *Registry) ApplyQuotes(codes []string, quotes map[string]decimal.Decimal, btc decimal.Decimal) {
	for _, code := range codes {
		i := r.index(code)
		if i < 0 {
			continue
		}
		rate := quotes[code]
		r.selected[i].Rate = rate
		r.selected[i].Amount = decimal.NewNullDecimal(rate.Mul(btc).Round(2))
	}
}

// ClearAmounts blanks every selected currency's amount, keeping known rates.
func (r *Registry) ClearAmounts() {
	for i := range r.selected {
		r.selected[i].Amount = decimal.NullDecimal{}
	}
}

func (r *Registry) index(code string) int {
	for i, c := range r.selected {
		if c.Code == code {
			return i
		}
	}
	return -1
}
