package share

import (
	"fmt"
	"sort"
)

// Set is a decoded collection of shares together with its threshold.
// Shares are held in ascending x order, so every Set built from the same
// shares selects the same points regardless of input order.
type Set struct {
	threshold int
	total     int
	shares    []Share
}

// NewSet validates and sorts the shares. total is the advertised number of
// shares (n); it must be at least threshold but is otherwise informational.
func NewSet(threshold, total int, shares []Share) (*Set, error) {
	if threshold < 2 {
		return nil, fmt.Errorf("%w: threshold %d is below 2", ErrInsufficientShares, threshold)
	}
	if total < threshold {
		return nil, fmt.Errorf("%w: total %d is below threshold %d", ErrInsufficientShares, total, threshold)
	}
	if len(shares) < threshold {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientShares, threshold, len(shares))
	}

	sorted := make([]Share, len(shares))
	for i, sh := range shares {
		sorted[i] = Share{x: sh.X(), y: sh.Y()}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].x.Cmp(sorted[j].x) < 0
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].x.Cmp(sorted[i].x) == 0 {
			return nil, fmt.Errorf("%w: x = %s", ErrDuplicateXCoordinate, sorted[i].x)
		}
	}

	return &Set{
		threshold: threshold,
		total:     total,
		shares:    sorted,
	}, nil
}

// Threshold returns k.
func (s *Set) Threshold() int { return s.threshold }

// Total returns n.
func (s *Set) Total() int { return s.total }

// Len returns the number of decoded shares actually present.
func (s *Set) Len() int { return len(s.shares) }

// Shares returns all shares in ascending x order.
func (s *Set) Shares() []Share {
	out := make([]Share, len(s.shares))
	copy(out, s.shares)
	return out
}

// Select returns the k shares with the smallest x-coordinates.
func (s *Set) Select() []Share {
	out := make([]Share, s.threshold)
	copy(out, s.shares[:s.threshold])
	return out
}
