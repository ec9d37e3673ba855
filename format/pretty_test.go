package format

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestPretty_Tiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ns   int64
		want string
	}{
		// Nanosecond tier.
		{0, "0 ns"},
		{1, "1 ns"},
		{999, "999 ns"},

		// Microsecond tier.
		{1_000, "1 us"},
		{1_500, "1.500 us"},
		{2_000, "2 us"},
		{999_000, "999 us"},
		{999_999, "999.999 us"},

		// Millisecond tier.
		{1_000_000, "1 ms"},
		{1_500_000, "1.500 ms"},
		{2_000_000, "2 ms"},
		{999_999_999, "999.999 ms"},

		// Second tier.
		{1_000_000_000, "1 s"},
		{1_500_000_000, "1.500 s"},
		{59_000_000_000, "59 s"},
		{59_999_000_000, "59.999 s"},

		// Sub-millisecond remainders are lost to truncation before the
		// exact-multiple check, so this renders as a whole second.
		{1_000_500_000, "1 s"},

		// Clock-face tier.
		{60_000_000_000, "00:01:00"},
		{90_000_000_000, "00:01:30"},
		{3_661_000_000_000, "01:01:01"},
		{86_400_000_000_000, "1 days 00:00:00"},
		{86_400_000_000_000 + 90_000_000_000, "1 days 00:01:30"},
		{3 * 86_400_000_000_000, "3 days 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Pretty(tt.ns); got != tt.want {
				t.Errorf("Pretty(%d) = %q, want %q", tt.ns, got, tt.want)
			}
		})
	}
}

// TestPretty_Negative documents that a negative reading (only possible under
// a broken clock) does not panic. The exact rendering is unspecified.
func TestPretty_Negative(t *testing.T) {
	t.Parallel()

	for _, ns := range []int64{-1, -999, -1_500, -1_000_000_000} {
		if got := Pretty(ns); got == "" {
			t.Errorf("Pretty(%d) returned an empty string", ns)
		}
	}
}

func TestPrettyDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "500 ns"},
		{time.Microsecond, "1 us"},
		{1500 * time.Millisecond, "1.500 s"},
		{90 * time.Second, "00:01:30"},
	}
	for _, tt := range tests {
		if got := PrettyDuration(tt.d); got != tt.want {
			t.Errorf("PrettyDuration(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{5 * 1024 * 1024, "5.00 MiB"},
		{3 * 1024 * 1024 * 1024, "3.00 GiB"},
	}
	for _, tt := range tests {
		if got := Bytes(tt.n); got != tt.want {
			t.Errorf("Bytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

// TestPretty_FractionDigits verifies that fractional renderings always carry
// exactly three digits after the decimal point.
func TestPretty_FractionDigits(t *testing.T) {
	t.Parallel()

	for _, ns := range []int64{1_001, 1_499_999, 59_001_000_000} {
		got := Pretty(ns)
		dot := strings.IndexByte(got, '.')
		if dot < 0 {
			t.Errorf("Pretty(%d) = %q, expected a fractional rendering", ns, got)
			continue
		}
		frac := got[dot+1:]
		if sp := strings.IndexByte(frac, ' '); sp >= 0 {
			frac = frac[:sp]
		}
		if len(frac) != 3 {
			t.Errorf("Pretty(%d) = %q, fraction %q is not 3 digits", ns, got, frac)
		}
	}
}

func ExamplePretty() {
	fmt.Println(Pretty(1_500))
	fmt.Println(Pretty(1_500_000_000))
	fmt.Println(Pretty(90_000_000_000))
	// Output:
	// 1.500 us
	// 1.500 s
	// 00:01:30
}
