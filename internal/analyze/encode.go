package analyze

import "strings"

const upperHex = "0123456789ABCDEF"

// EncodeComponent percent-encodes s the way JavaScript's
// encodeURIComponent does: every byte of the UTF-8 encoding is escaped
// except ASCII letters, digits and - _ . ! ~ * ' ( ).
//
// url.QueryEscape is not a substitute: it writes spaces as '+' and escapes
// ! ' ( ) *, which changes the query string the endpoint receives.
func EncodeComponent(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnescaped(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[c>>4])
		sb.WriteByte(upperHex[c&0x0F])
	}

	return sb.String()
}

// isUnescaped reports whether c is left as-is by encodeURIComponent.
func isUnescaped(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
