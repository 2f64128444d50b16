package share

import (
	"fmt"
	"math/big"
	"strconv"
)

// MaxBase is the largest radix the 0-9a-z digit alphabet can express.
const MaxBase = 36

// Decode interprets digits as a numeral in the given base and returns its
// non-negative value. Letters are case-insensitive. Signs, separators and
// empty strings are rejected.
func Decode(base int, digits string) (*big.Int, error) {
	if base < 2 || base > MaxBase {
		return nil, fmt.Errorf("%w: %d (want 2..%d)", ErrInvalidBase, base, MaxBase)
	}
	if digits == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidDigit)
	}

	radix := big.NewInt(int64(base))
	value := new(big.Int)
	digit := new(big.Int)

	// value = value*base + d, left to right
	for pos, c := range digits {
		d := digitValue(c)
		if d < 0 || d >= base {
			return nil, fmt.Errorf("%w: %q at position %d is not a base %d digit", ErrInvalidDigit, c, pos, base)
		}
		value.Mul(value, radix)
		value.Add(value, digit.SetInt64(int64(d)))
	}

	return value, nil
}

// digitValue maps 0-9, a-z and A-Z onto 0..35, anything else onto -1.
func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// ParseBase parses a string-typed base.
func ParseBase(s string) (int, error) {
	base, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidBase, s)
	}
	if base < 2 || base > MaxBase {
		return 0, fmt.Errorf("%w: %d (want 2..%d)", ErrInvalidBase, base, MaxBase)
	}
	return base, nil
}

// ParseIdentifier parses a share identifier as a base-10 integer of any size.
func ParseIdentifier(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidIdentifier)
	}
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return x, nil
}

// DecodeShare turns the textual form of one share into a Share.
func DecodeShare(identifier, base, digits string) (Share, error) {
	x, err := ParseIdentifier(identifier)
	if err != nil {
		return Share{}, err
	}

	b, err := ParseBase(base)
	if err != nil {
		return Share{}, fmt.Errorf("share %s: %w", identifier, err)
	}

	y, err := Decode(b, digits)
	if err != nil {
		return Share{}, fmt.Errorf("share %s: %w", identifier, err)
	}

	return Share{x: x, y: y}, nil
}
