package services

import (
	"math"

	"routeplanner/internal/pkg/errs"
)

// SplitEvenly cuts items into m consecutive chunks in list order. The first
// len(items)%m chunks get one extra item. Geography is ignored.
//
// Example:
//
//	SplitEvenly([]string{"a", "b", "c", "d", "e"}, 3) // [[a b] [c d] [e]]
func SplitEvenly[T any](items []T, m int) ([][]T, error) {
	if m <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("courier count", m, 1, math.MaxInt)
	}

	base, extra := len(items)/m, len(items)%m
	out := make([][]T, m)
	next := 0
	for i := range out {
		size := base
		if i < extra {
			size++
		}
		out[i] = make([]T, size)
		copy(out[i], items[next:next+size])
		next += size
	}
	return out, nil
}
