package money

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{in: 0, want: 0},
		{in: 3007.7, want: 3008},
		{in: 1218.6, want: 1219},
		{in: 1087.5, want: 1088},
		{in: 1760.2, want: 1760},
		{in: 4650, want: 4650},
		{in: 0.49, want: 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(4226.3); got != "₹4226" {
		t.Fatalf("Format = %q", got)
	}
	if got := FormatPlain(1087.5); got != "Rs. 1088" {
		t.Fatalf("FormatPlain = %q", got)
	}
}
