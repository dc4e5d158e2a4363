package format

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"08031234567", "+2348031234567"},
		{"2348031234567", "+2348031234567"},
		{"+2348031234567", "+2348031234567"},
		{"8031234567", "+2348031234567"},
		{"0803 123 4567", "+2348031234567"},
		{"(0803) 123-4567", "+2348031234567"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if err != nil {
				t.Fatalf("NormalizePhone(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Invalid(t *testing.T) {
	tests := []string{
		"",
		"abc",
		"0803123",        // too short
		"080312345678",   // too long
		"+14155550100",   // wrong country code
		"0803#123#4567",  // bad separator
		"12345",          // neither local nor international shape
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if got, err := NormalizePhone(in); err == nil {
				t.Errorf("NormalizePhone(%q) = %q, expected error", in, got)
			}
		})
	}
}
