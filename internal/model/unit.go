package model

// Unit is the display unit of the amount field.
type Unit string

const (
	UnitBTC  Unit = "BTC"
	UnitSats Unit = "SATS"
)

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000

// Other returns the unit a toggle switches to.
func (u Unit) Other() Unit {
	if u == UnitSats {
		return UnitBTC
	}
	return UnitSats
}
