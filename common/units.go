package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SubunitsPerToken smallest token units per display unit. Every amount that
// crosses the canister boundary is an integer in smallest units; the UI layer
// converts to and from display units.
const SubunitsPerToken int64 = 100_000_000

const maxFractionDigits = 8

var (
	// ErrInvalidAmount amount is not a valid decimal number
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNonPositiveAmount amount must be strictly greater than zero
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// ParseDisplayAmount convert a display-unit decimal string (e.g. "2.5") to
// smallest units. Exact string arithmetic, no floats.
func ParseDisplayAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole = s[:idx]
		frac = s[idx+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return 0, ErrInvalidAmount
		}
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > maxFractionDigits {
		return 0, ErrInvalidAmount
	}

	wholeUnits, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	fracUnits := int64(0)
	if frac != "" {
		padded := frac + strings.Repeat("0", maxFractionDigits-len(frac))
		fracUnits, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	if wholeUnits > ((1<<63-1)-fracUnits)/SubunitsPerToken {
		return 0, ErrInvalidAmount
	}
	amount := wholeUnits*SubunitsPerToken + fracUnits
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	return amount, nil
}

// FormatDisplayAmount convert smallest units to a display-unit decimal
// string, trailing zeros trimmed. 250000000 -> "2.5".
func FormatDisplayAmount(subunits int64) string {
	negative := subunits < 0
	if negative {
		subunits = -subunits
	}

	whole := subunits / SubunitsPerToken
	frac := subunits % SubunitsPerToken

	out := strconv.FormatInt(whole, 10)
	if frac > 0 {
		fracStr := fmt.Sprintf("%08d", frac)
		fracStr = strings.TrimRight(fracStr, "0")
		out += "." + fracStr
	}
	if negative {
		out = "-" + out
	}
	return out
}
