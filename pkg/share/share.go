package share

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidBase indicates a radix outside 2..36.
	ErrInvalidBase = errors.New("invalid base")

	// ErrInvalidDigit indicates a character that is not a digit of the given base.
	ErrInvalidDigit = errors.New("invalid digit")

	// ErrInvalidIdentifier indicates an x-coordinate that is not a base-10 integer.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInsufficientShares indicates fewer shares than the threshold requires.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrDuplicateXCoordinate indicates two shares with the same x-coordinate.
	ErrDuplicateXCoordinate = errors.New("duplicate x-coordinate")
)

// Share is a single point (x, y) sampled from the secret-bearing polynomial.
// It is immutable: the constructor and the accessors copy their values.
type Share struct {
	x *big.Int
	y *big.Int
}

// New returns a Share holding copies of x and y.
func New(x, y *big.Int) Share {
	return Share{
		x: new(big.Int).Set(x),
		y: new(big.Int).Set(y),
	}
}

// X returns a copy of the share's x-coordinate.
func (s Share) X() *big.Int {
	if s.x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(s.x)
}

// Y returns a copy of the share's decoded value.
func (s Share) Y() *big.Int {
	if s.y == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(s.y)
}

func (s Share) String() string {
	return fmt.Sprintf("(%s, %s)", s.X(), s.Y())
}
