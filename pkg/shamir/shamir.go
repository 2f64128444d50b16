package shamir

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Beastly713/hashira/pkg/share"
)

// ErrInconsistentShares indicates the shares do not lie on a common polynomial
// with an integer value at zero, detected as a non-zero division remainder.
var ErrInconsistentShares = errors.New("inconsistent shares")

// Reconstruction errors raised by the share package, re-exported so callers
// can match every reconstruction failure against this package.
var (
	ErrInsufficientShares   = share.ErrInsufficientShares
	ErrDuplicateXCoordinate = share.ErrDuplicateXCoordinate
)

// Reconstruct returns f(0) for the unique polynomial of degree < len(points)
// passing through points, using exact integer Lagrange interpolation.
//
// Each term y_i * prod(-x_j) is brought onto the common denominator
// lcm(prod(x_i - x_j)) and a single checked division is performed at the end,
// so consistent shares at any distinct x-coordinates are accepted. A single
// point is returned as is.
func Reconstruct(points []share.Share) (*big.Int, error) {
	return interpolatePolynomial(points, new(big.Int), false)
}

// ReconstructTermwise evaluates the same interpolation but divides every term
// by its own denominator before summing. Any non-exact term division is
// reported as ErrInconsistentShares, which also rejects consistent share sets
// whose individual Lagrange coefficients are fractional (for example x = 1, 2, 4).
func ReconstructTermwise(points []share.Share) (*big.Int, error) {
	return interpolatePolynomial(points, new(big.Int), true)
}

// interpolatePolynomial takes N sample points and returns the exact value of
// the interpolating polynomial at x.
func interpolatePolynomial(points []share.Share, x *big.Int, termwise bool) (*big.Int, error) {
	limit := len(points)
	if limit == 0 {
		return nil, fmt.Errorf("%w: no points to interpolate", ErrInsufficientShares)
	}

	xSamples := make([]*big.Int, limit)
	ySamples := make([]*big.Int, limit)
	seen := make(map[string]int, limit)
	for i, p := range points {
		xSamples[i] = p.X()
		ySamples[i] = p.Y()

		key := xSamples[i].String()
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: x = %s at positions %d and %d", ErrDuplicateXCoordinate, key, prev, i)
		}
		seen[key] = i
	}

	if limit == 1 {
		return ySamples[0], nil
	}

	terms := make([]*big.Int, limit)
	denoms := make([]*big.Int, limit)
	diff := new(big.Int)

	for i := 0; i < limit; i++ {
		num := big.NewInt(1)
		denom := big.NewInt(1)
		for j := 0; j < limit; j++ {
			if i == j {
				continue
			}
			num.Mul(num, diff.Sub(x, xSamples[j]))
			denom.Mul(denom, diff.Sub(xSamples[i], xSamples[j]))
		}

		terms[i] = num.Mul(num, ySamples[i])
		denoms[i] = denom
	}

	if termwise {
		return sumQuotients(terms, denoms, xSamples)
	}
	return sumOverCommonDenominator(terms, denoms)
}

// sumQuotients divides every term by its own denominator and sums the quotients.
func sumQuotients(terms, denoms, xSamples []*big.Int) (*big.Int, error) {
	result := new(big.Int)
	q, r := new(big.Int), new(big.Int)
	for i := range terms {
		q.QuoRem(terms[i], denoms[i], r)
		if r.Sign() != 0 {
			return nil, fmt.Errorf("%w: term for x = %s is %s/%s", ErrInconsistentShares, xSamples[i], terms[i], denoms[i])
		}
		result.Add(result, q)
	}
	return result, nil
}

// sumOverCommonDenominator scales every term to lcm(|denoms|), sums, and
// performs one exact division.
func sumOverCommonDenominator(terms, denoms []*big.Int) (*big.Int, error) {
	lcm := big.NewInt(1)
	gcd := new(big.Int)
	abs := new(big.Int)
	for _, d := range denoms {
		abs.Abs(d)
		gcd.GCD(nil, nil, lcm, abs)
		lcm.Mul(lcm.Quo(lcm, gcd), abs)
	}

	sum := new(big.Int)
	scale := new(big.Int)
	for i := range terms {
		// lcm is a multiple of denoms[i], so the quotient carries its sign exactly.
		scale.Quo(lcm, denoms[i])
		sum.Add(sum, scale.Mul(scale, terms[i]))
	}

	result, rem := new(big.Int).QuoRem(sum, lcm, new(big.Int))
	if rem.Sign() != 0 {
		return nil, fmt.Errorf("%w: interpolated value %s/%s is not an integer", ErrInconsistentShares, sum, lcm)
	}
	return result, nil
}
