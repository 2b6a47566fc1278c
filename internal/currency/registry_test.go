package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRegistry_AddKeepsOrderAndUniqueness(t *testing.T) {
	r := NewRegistry()
	for _, code := range []string{"GBP", "jpy", "CHF"} {
		if _, err := r.Add(code); err != nil {
			t.Fatalf("add %s: %v", code, err)
		}
	}
	if _, err := r.Add("GBP"); !errors.Is(err, ErrAlreadySelected) {
		t.Errorf("expected ErrAlreadySelected, got %v", err)
	}
	if _, err := r.Add("XYZ"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}
	codes := r.Codes()
	want := []string{"GBP", "JPY", "CHF"}
	if len(codes) != len(want) {
		t.Fatalf("expected %v, got %v", want, codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], codes[i])
		}
	}
}

func TestRegistry_AvailableIsDisjointFromSelection(t *testing.T) {
	r := NewRegistry()
	r.Add("GBP")
	r.Add("TRY")
	avail := r.Available()
	if len(avail) != len(Catalog)-2 {
		t.Fatalf("expected %d available, got %d", len(Catalog)-2, len(avail))
	}
	for _, c := range avail {
		if c.Code == "GBP" || c.Code == "TRY" {
			t.Errorf("%s is selected and must not be offered", c.Code)
		}
	}
	r.Remove("GBP")
	if len(r.Available()) != len(Catalog)-1 {
		t.Error("removed currency should return to the pick-list")
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	r.Add("GBP")
	if r.Remove("EUR") {
		t.Error("removing an unselected code should report false")
	}
	if !r.Remove("gbp") {
		t.Error("expected removal to succeed")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty selection, got %d", r.Len())
	}
}

func TestRegistry_ApplyQuotesAndClear(t *testing.T) {
	r := NewRegistry()
	r.Add("GBP")
	r.Add("JPY")
	r.Add("CHF")

	quotes := map[string]decimal.Decimal{
		"GBP": decimal.RequireFromString("39000.555"),
		"JPY": decimal.NewFromInt(7000000),
	}
	btc := decimal.RequireFromString("0.1")
	r.ApplyQuotes([]string{"GBP", "JPY"}, quotes, btc)

	sel := r.Selected()
	if got := sel[0].Amount.Decimal.StringFixed(2); !sel[0].Amount.Valid || got != "3900.06" {
		t.Errorf("GBP amount: got %s (valid=%v)", got, sel[0].Amount.Valid)
	}
	if got := sel[1].Amount.Decimal.StringFixed(2); got != "700000.00" {
		t.Errorf("JPY amount: got %s", got)
	}
	if sel[2].Amount.Valid {
		t.Error("CHF was not requested and must stay untouched")
	}

	r.ClearAmounts()
	for _, c := range r.Selected() {
		if c.Amount.Valid {
			t.Errorf("%s amount should be cleared", c.Code)
		}
	}
	if !r.Selected()[0].Rate.Equal(quotes["GBP"]) {
		t.Error("clearing amounts must keep the known rate")
	}
}

func TestRegistry_ApplyQuotesMissingQuoteIsZero(t *testing.T) {
	r := NewRegistry()
	r.Add("PYG")
	r.ApplyQuotes([]string{"PYG"}, map[string]decimal.Decimal{}, decimal.NewFromInt(1))
	c := r.Selected()[0]
	if !c.Rate.IsZero() || !c.Amount.Valid || !c.Amount.Decimal.IsZero() {
		t.Errorf("expected zero rate and 0.00 amount, got rate=%s amount=%v", c.Rate, c.Amount)
	}
}
