package macro

import "unicode"

// IsValidRegister reports whether r names a macro register.
func IsValidRegister(r rune) bool {
	return IsLetterRegister(r) || IsDigitRegister(r)
}

// IsLetterRegister reports whether r is a-z.
func IsLetterRegister(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// IsDigitRegister reports whether r is 0-9.
func IsDigitRegister(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsAppendRegister reports whether r is A-Z, which appends to the
// matching lowercase register.
func IsAppendRegister(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// NormalizeRegister maps A-Z to a-z. Invalid names map to 0.
func NormalizeRegister(r rune) rune {
	if IsAppendRegister(r) {
		return unicode.ToLower(r)
	}
	if IsValidRegister(r) {
		return r
	}
	return 0
}
