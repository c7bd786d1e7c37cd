package codec

import "strings"

// MaskPAN renders a PAN as "1234 56** **** 7890": first 6 digits and last 4
// digits visible, the rest replaced with asterisks, grouped in blocks of 4.
func MaskPAN(pan string) string {
	digits := make([]byte, 0, len(pan))
	for i := 0; i < len(pan); i++ {
		if pan[i] >= '0' && pan[i] <= '9' {
			digits = append(digits, pan[i])
		}
	}
	n := len(digits)
	masked := make([]byte, n)
	copy(masked, digits)
	for i := 6; i < n-4; i++ {
		masked[i] = '*'
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(masked[i])
	}
	return b.String()
}

// BIN returns the first 8 digits of pan, the granularity the acquirer-facing
// BIN resolver and terminal selection operate on.
func BIN(pan string) string {
	digits := make([]byte, 0, 8)
	for i := 0; i < len(pan) && len(digits) < 8; i++ {
		if pan[i] >= '0' && pan[i] <= '9' {
			digits = append(digits, pan[i])
		}
	}
	return string(digits)
}
