package handoff

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodeComponent percent-encodes a string for embedding in a deep-link query
// value. Unlike net/url query escaping it never emits '+', and it leaves the
// same unreserved marks untouched that browsers do, so spaces become %20 and
// emoji survive as UTF-8 escapes.
func EncodeComponent(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
