package license

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// KeyAlphabet leaves out 0, 1, I and O. Its 32 symbols let a random byte be
// reduced with a mask without bias.
const KeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	keyChars  = 16
	groupSize = 4
)

// GenerateKey returns a random key formatted as XXXX-XXXX-XXXX-XXXX.
func GenerateKey() (string, error) {
	buf := make([]byte, keyChars)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = KeyAlphabet[b&31]
	}

	return group(string(buf)), nil
}

// NormalizeKey upper-cases key and drops spaces and dashes, then regroups it
// if exactly 16 characters remain. Anything else comes back cleaned but
// ungrouped and won't match a stored key.
func NormalizeKey(key string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' || r == '\t' {
			return -1
		}

		return r
	}, strings.ToUpper(strings.TrimSpace(key)))

	if len(clean) != keyChars {
		return clean
	}

	return group(clean)
}

func group(s string) string {
	var b strings.Builder

	for i, r := range s {
		if i > 0 && i%groupSize == 0 {
			b.WriteByte('-')
		}

		b.WriteRune(r)
	}

	return b.String()
}
