package mathutil

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// MinPrecision is the lowest token precision accepted by the network.
	MinPrecision = 0
	// MaxPrecision is the highest token precision accepted by the network.
	MaxPrecision = 18
)

var (
	// ErrInvalidPrecision ...
	ErrInvalidPrecision = errors.New("precision must be in range [0, 18]")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount is not a valid decimal number")
	// ErrTooManyDecimals ...
	ErrTooManyDecimals = errors.New("amount has more fractional digits than the token precision")
)

// FormatTokenAmount renders an amount of base units as a human-readable
// decimal string with the given precision. Trailing zeros are trimmed, so
// formatting 150000000 with precision 8 yields "1.5".
func FormatTokenAmount(baseUnits uint64, precision int) (string, error) {
	if precision < MinPrecision || precision > MaxPrecision {
		return "", ErrInvalidPrecision
	}
	if precision == 0 {
		return new(big.Int).SetUint64(baseUnits).String(), nil
	}

	s := fmt.Sprintf("%0*d", precision+1, baseUnits)
	whole, frac := s[:len(s)-precision], s[len(s)-precision:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole, nil
	}
	return whole + "." + frac, nil
}

// ParseTokenAmount parses a human-readable decimal string into base units.
// It is the exact inverse of FormatTokenAmount for any value representable
// with at most precision fractional digits; amounts with more fractional
// digits are rejected rather than silently truncated.
func ParseTokenAmount(text string, precision int) (uint64, error) {
	if precision < MinPrecision || precision > MaxPrecision {
		return 0, ErrInvalidPrecision
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrInvalidAmount
	}

	whole, frac := text, ""
	if i := strings.Index(text, "."); i >= 0 {
		whole, frac = text[:i], text[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return 0, ErrInvalidAmount
	}
	if len(strings.TrimRight(frac, "0")) > precision {
		return 0, ErrTooManyDecimals
	}

	frac = strings.TrimRight(frac, "0")
	frac += strings.Repeat("0", precision-len(frac))

	z, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok || !z.IsUint64() {
		return 0, ErrInvalidAmount
	}
	return z.Uint64(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
