package currency

import (
	"testing"

	"github.com/shopspring/decimal"

	"GeoPrice/pkg/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Currencies = map[string]config.Currency{
		"USD": {Rate: 1.0, Symbol: "$"},
		"INR": {Rate: 83.0, Symbol: "₹"},
		"EUR": {Rate: 0.92, Symbol: "€"},
	}
	return cfg
}

func TestConvertExact(t *testing.T) {
	c := NewConverter(testConfig())

	// 3.0 raw ($100,000 units) at rate 83.0 = 24,900,000 exactly.
	got, err := c.Convert(3.0, "INR")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := decimal.NewFromInt(24900000)
	if !got.Value.Equal(want) {
		t.Fatalf("value = %s, want %s", got.Value, want)
	}
	if got.Symbol != "₹" {
		t.Fatalf("symbol = %q, want ₹", got.Symbol)
	}
}

func TestConvertUSDIdentity(t *testing.T) {
	c := NewConverter(testConfig())

	got, err := c.Convert(4.65, "USD")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := decimal.NewFromInt(465000)
	if !got.Value.Equal(want) {
		t.Fatalf("value = %s, want %s", got.Value, want)
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	c := NewConverter(testConfig())
	if _, err := c.Convert(1.0, "XYZ"); err == nil {
		t.Fatalf("expected error for unknown currency")
	}
}

func TestDisplayGrouping(t *testing.T) {
	cases := []struct {
		amount Amount
		want   string
	}{
		{Amount{Symbol: "₹", Value: decimal.NewFromInt(24900000)}, "₹24,900,000"},
		{Amount{Symbol: "$", Value: decimal.NewFromInt(465000)}, "$465,000"},
		{Amount{Symbol: "$", Value: decimal.NewFromInt(950)}, "$950"},
		{Amount{Symbol: "€", Value: decimal.NewFromFloat(1234.4)}, "€1,234"},
	}
	for _, tc := range cases {
		if got := tc.amount.Display(); got != tc.want {
			t.Fatalf("display = %q, want %q", got, tc.want)
		}
	}
}
