package batch

import "strings"

// SanitizeFileName replaces every rune outside [A-Za-z0-9._-] with '_'.
func SanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, s)
}

// OutputFileName is the certificate file name for a recipient.
func OutputFileName(name string) string {
	return SanitizeFileName("Certificate_" + name + ".pdf")
}
