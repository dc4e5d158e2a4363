package format

import "testing"

func TestNairaCompact(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₦0"},
		{500, "₦500"},
		{999, "₦999"},
		{1000, "₦1K"},
		{1500, "₦1.5K"},
		{1980, "₦1.9K"}, // truncated, not rounded
		{25000, "₦25K"},
		{999999, "₦999.9K"},
		{1000000, "₦1M"},
		{2500000, "₦2.5M"},
		{1200000000, "₦1.2B"},
		{-1500, "-₦1.5K"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NairaCompact(tt.amount); got != tt.want {
				t.Errorf("NairaCompact(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestNairaPrecise(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{500, "₦500"},
		{1500, "₦1.50K"},
		{2500000, "₦2.50M"},
		{2555000, "₦2.56M"}, // rounded, not truncated
		{3000000000, "₦3.00B"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NairaPrecise(tt.amount); got != tt.want {
				t.Errorf("NairaPrecise(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestNairaFull(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₦0.00"},
		{500, "₦500.00"},
		{2500000, "₦2,500,000.00"},
		{1234.5, "₦1,234.50"},
		{999.999, "₦1,000.00"},
		{-75000.25, "-₦75,000.25"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NairaFull(tt.amount); got != tt.want {
				t.Errorf("NairaFull(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
