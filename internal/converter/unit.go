package converter

import (
	"regexp"
	"strings"

	"VexlConverter/internal/model"

	"github.com/shopspring/decimal"
)

var (
	btcInput  = regexp.MustCompile(`^\d*\.?\d{0,8}$`)
	satsInput = regexp.MustCompile(`^\d*$`)
)

// ValidInput reports whether raw is an acceptable field value for the unit.
func ValidInput(unit model.Unit, raw string) bool {
	if unit == model.UnitSats {
		return satsInput.MatchString(raw)
	}
	return btcInput.MatchString(raw)
}

// BTCValue converts a raw field value to a BTC amount. ok is false when raw
// holds no number yet, e.g. "" or ".".
func BTCValue(unit model.Unit, raw string) (btc decimal.Decimal, ok bool) {
	s := strings.TrimSuffix(raw, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if unit == model.UnitSats {
		d = d.Shift(-8)
	}
	return d, true
}

// Reexpress rewrites raw from unit `from` into the other unit. Satoshis are
// rounded to an integer; BTC keeps at most 8 fraction digits with trailing
// zeros trimmed. A raw value holding no number becomes empty.
func Reexpress(raw string, from model.Unit) string {
	btc, ok := BTCValue(from, raw)
	if !ok {
		return ""
	}
	if from == model.UnitBTC {
		return btc.Shift(8).Round(0).String()
	}
	return btc.Round(8).String()
}
