package registration

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// DigitSource supplies the random suffix for NHR derivation. It is an
// interface so tests can substitute a deterministic source.
type DigitSource interface {
	// ThreeDigits returns a value in [0, 1000).
	ThreeDigits() int
}

type cryptoDigitSource struct{}

func (cryptoDigitSource) ThreeDigits() int {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		// crypto/rand only fails if the platform entropy source is broken;
		// a fixed suffix keeps the identifier well-formed.
		return 0
	}
	return int(n.Int64())
}

// NewDigitSource returns the default crypto/rand backed source.
func NewDigitSource() DigitSource {
	return cryptoDigitSource{}
}

// DeriveNHR computes a National Health Record number from a CNIC that has
// already passed format validation: dashes and whitespace are stripped, the
// trailing check digit is dropped, the 6 digits before it are kept, and a
// zero-padded 3-digit random suffix is appended. The result always matches
// ^NHR-\d{9}$.
func DeriveNHR(cnic string, src DigitSource) string {
	digits := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cnic)
	if n := len(digits); n >= 7 {
		digits = digits[n-7 : n-1]
	}
	return fmt.Sprintf("NHR-%s%03d", digits, src.ThreeDigits()%1000)
}
