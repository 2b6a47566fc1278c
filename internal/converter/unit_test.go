package converter

import (
	"testing"

	"VexlConverter/internal/model"
)

func TestValidInput(t *testing.T) {
	tests := []struct {
		unit model.Unit
		raw  string
		want bool
	}{
		{model.UnitBTC, "", true},
		{model.UnitBTC, ".", true},
		{model.UnitBTC, "0.", true},
		{model.UnitBTC, ".5", true},
		{model.UnitBTC, "21", true},
		{model.UnitBTC, "0.12345678", true},
		{model.UnitBTC, "0.123456789", false},
		{model.UnitBTC, "1.2.3", false},
		{model.UnitBTC, "-1", false},
		{model.UnitBTC, "1e5", false},
		{model.UnitBTC, "1,5", false},
		{model.UnitSats, "", true},
		{model.UnitSats, "100000", true},
		{model.UnitSats, "1.5", false},
		{model.UnitSats, ".", false},
		{model.UnitSats, "12a", false},
	}
	for _, tt := range tests {
		if got := ValidInput(tt.unit, tt.raw); got != tt.want {
			t.Errorf("ValidInput(%s, %q) = %v, want %v", tt.unit, tt.raw, got, tt.want)
		}
	}
}

func TestBTCValue(t *testing.T) {
	tests := []struct {
		unit   model.Unit
		raw    string
		want   string
		wantOK bool
	}{
		{model.UnitBTC, "", "0", false},
		{model.UnitBTC, ".", "0", false},
		{model.UnitBTC, "0.", "0", true},
		{model.UnitBTC, ".5", "0.5", true},
		{model.UnitBTC, "0.1", "0.1", true},
		{model.UnitSats, "1000", "0.00001", true},
		{model.UnitSats, "100000000", "1", true},
	}
	for _, tt := range tests {
		got, ok := BTCValue(tt.unit, tt.raw)
		if ok != tt.wantOK {
			t.Errorf("BTCValue(%s, %q) ok = %v, want %v", tt.unit, tt.raw, ok, tt.wantOK)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("BTCValue(%s, %q) = %s, want %s", tt.unit, tt.raw, got, tt.want)
		}
	}
}

func TestReexpress(t *testing.T) {
	tests := []struct {
		raw  string
		from model.Unit
		want string
	}{
		{"0.00001", model.UnitBTC, "1000"},
		{"1", model.UnitBTC, "100000000"},
		{"0.5", model.UnitBTC, "50000000"},
		{"1000", model.UnitSats, "0.00001"},
		{"150000000", model.UnitSats, "1.5"},
		{"1", model.UnitSats, "0.00000001"},
		{".", model.UnitBTC, ""},
		{"", model.UnitSats, ""},
	}
	for _, tt := range tests {
		if got := Reexpress(tt.raw, tt.from); got != tt.want {
			t.Errorf("Reexpress(%q, %s) = %q, want %q", tt.raw, tt.from, got, tt.want)
		}
	}
}

func TestReexpressRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.00001", "0.12345678", "21", "0.5"} {
		sats := Reexpress(raw, model.UnitBTC)
		if back := Reexpress(sats, model.UnitSats); back != raw {
			t.Errorf("%s -> %s -> %s, expected the original value", raw, sats, back)
		}
	}
}

func TestField_SelectionClampsAndFollowsValue(t *testing.T) {
	f := NewField()
	if !f.Focused() {
		t.Fatal("new field should be focused")
	}
	f.SetValue("0.123")
	if s, e := f.Selection(); s != 5 || e != 5 {
		t.Errorf("caret should move to the end, got %d..%d", s, e)
	}
	f.SetSelection(-2, 99)
	if s, e := f.Selection(); s != 0 || e != 5 {
		t.Errorf("selection should be clamped, got %d..%d", s, e)
	}
	f.SetSelection(1, 2)
	f.SetValue("0.123")
	if s, e := f.Selection(); s != 1 || e != 2 {
		t.Errorf("unchanged value must keep the selection, got %d..%d", s, e)
	}
	f.SelectAll()
	if s, e := f.Selection(); s != 0 || e != 5 {
		t.Errorf("SelectAll: got %d..%d", s, e)
	}
}
