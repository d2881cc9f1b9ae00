package phone

import "strings"

// Philippine mobile numbers are accepted in two shapes: 09XXXXXXXXX (11
// digits) and +639XXXXXXXXX (13 characters). Everything is normalized to the
// local 09 form, which is also the pending-verification store key and the
// users table lookup attribute.

const maskRune = '*'

// Normalize converts an accepted PH mobile number to the 09XXXXXXXXX form.
// Returns false when the input is not a valid PH mobile number.
func Normalize(raw string) (string, bool) {
	n := strings.TrimSpace(raw)
	if strings.HasPrefix(n, "+639") && len(n) == 13 {
		n = "0" + n[3:]
	}
	if !IsValid(n) {
		return "", false
	}
	return n, true
}

// IsValid reports whether n is a PH mobile number in either accepted form.
func IsValid(n string) bool {
	switch {
	case strings.HasPrefix(n, "09") && len(n) == 11:
		return allDigits(n)
	case strings.HasPrefix(n, "+639") && len(n) == 13:
		return allDigits(n[1:])
	}
	return false
}

// ToE164 converts a normalized 09XXXXXXXXX number to +639XXXXXXXXX, the form
// the SMS gateway expects.
func ToE164(normalized string) string {
	if strings.HasPrefix(normalized, "09") {
		return "+63" + normalized[1:]
	}
	return normalized
}

// Mask hides the middle of a number for client display: the first four and
// last four characters stay visible, everything between becomes '*'.
func Mask(n string) string {
	if len(n) <= 8 {
		return n
	}
	b := []rune(n)
	for i := 4; i < len(b)-4; i++ {
		b[i] = maskRune
	}
	return string(b)
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
