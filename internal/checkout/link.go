package checkout

import (
	"errors"
	"strings"
	"unicode"
)

const whatsAppBaseURL = "https://wa.me/"

var ErrPhoneEmpty = errors.New("phone is empty")

// Link builds the messaging deep link carrying message as its text
// parameter. Non-digit characters in phone are dropped.
func Link(phone, message string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", ErrPhoneEmpty
	}

	return whatsAppBaseURL + digits + "?text=" + EncodeURIComponent(message), nil
}

// EncodeURIComponent percent-encodes s the way browsers do for
// encodeURIComponent: only A-Z a-z 0-9 and -_.!~*'() are left as is.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
