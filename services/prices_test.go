package services

import "testing"

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"265,00", "265.00"},
		{"1.234,56", "1234.56"},
		{"19.99", "19.99"},
		{"2,50", "2.50"},
		{"€265,00", "265.00"},
		{"$12.00", "12.00"},
		{"£3,99", "3.99"},
		{" 7,5 ", "7.50"},
		{"1.234.567,89", "1234567.89"},
		{"", "0.00"},
		{"abc", "0.00"},
		{"-5,00", "0.00"},
	}

	for _, tt := range tests {
		got := NormalizePrice(tt.raw)
		if got.StringFixed(2) != tt.want {
			t.Errorf("NormalizePrice(%q) = %s; want %s", tt.raw, got.StringFixed(2), tt.want)
		}
	}
}

func TestNormalizePriceSeparatorOrdering(t *testing.T) {
	// Both separators present: the dot must be treated as a thousands
	// separator even though a lone dot would parse as a decimal point.
	if got := NormalizePrice("1.234,56"); got.StringFixed(2) != "1234.56" {
		t.Fatalf("both separators: got %s", got.StringFixed(2))
	}
	if got := NormalizePrice("1.234"); got.StringFixed(3) != "1.234" {
		t.Fatalf("dot only: got %s", got.StringFixed(3))
	}
}
