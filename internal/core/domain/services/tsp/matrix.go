package tsp

import (
	"fmt"
	"math"

	"routeplanner/internal/pkg/errs"
)

// NoEdge is the diagonal sentinel: a node has no edge to itself.
var NoEdge = math.Inf(1)

// Matrix is a dense k×k travel-cost table stored row-major in one buffer.
// Off-diagonal entries are finite and non-negative; diagonal entries are NoEdge.
type Matrix struct {
	n int
	w []float64
}

// NewMatrix returns an n×n matrix with zero off-diagonal costs.
func NewMatrix(n int) (*Matrix, error) {
	if n < 0 {
		return nil, errs.NewValueIsOutOfRangeError("matrix size", n, 0, math.MaxInt)
	}
	m := &Matrix{n: n, w: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.w[i*n+i] = NoEdge
	}
	return m, nil
}

// NewMatrixFromRows copies a square table. Diagonal values are ignored and
// replaced by NoEdge.
//
// Example:
//
//	m, err := tsp.NewMatrixFromRows([][]float64{
//	    {0, 1, 2},
//	    {2, 0, 1},
//	    {1, 2, 0},
//	})
func NewMatrixFromRows(rows [][]float64) (*Matrix, error) {
	m, err := NewMatrix(len(rows))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.n {
			return nil, errs.NewValueIsInvalidErrorWithCause("matrix",
				fmt.Errorf("row %d has %d columns, want %d", i, len(row), m.n))
		}
		for j, v := range row {
			if i == j {
				continue
			}
			if err := m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Size returns k.
func (m *Matrix) Size() int {
	if m == nil {
		return 0
	}
	return m.n
}

// At returns cost(i → j).
func (m *Matrix) At(i, j int) float64 {
	return m.w[i*m.n+j]
}

// Set assigns cost(i → j). Self loops and negative, NaN or infinite costs are rejected.
func (m *Matrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.n {
		return errs.NewValueIsOutOfRangeError("row", i, 0, m.n-1)
	}
	if j < 0 || j >= m.n {
		return errs.NewValueIsOutOfRangeError("column", j, 0, m.n-1)
	}
	if i == j {
		return errs.NewValueIsInvalidErrorWithCause("cost", fmt.Errorf("self loop at %d", i))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errs.NewValueIsOutOfRangeError(fmt.Sprintf("cost[%d][%d]", i, j), v, 0, math.MaxFloat64)
	}
	m.w[i*m.n+j] = v
	return nil
}

// Without returns a copy with row and column index removed. Indices above it
// shift down by one.
func (m *Matrix) Without(index int) (*Matrix, error) {
	if index < 0 || index >= m.n {
		return nil, errs.NewValueIsOutOfRangeError("index", index, 0, m.n-1)
	}
	out, _ := NewMatrix(m.n - 1)
	for i, oi := 0, 0; i < m.n; i++ {
		if i == index {
			continue
		}
		for j, oj := 0, 0; j < m.n; j++ {
			if j == index {
				continue
			}
			out.w[oi*out.n+oj] = m.w[i*m.n+j]
			oj++
		}
		oi++
	}
	return out, nil
}

// WithAppended returns a copy grown by one node at index k.
// out[j] is cost(k → j) and in[i] is cost(i → k), both of length k.
func (m *Matrix) WithAppended(out, in []float64) (*Matrix, error) {
	if len(out) != m.n || len(in) != m.n {
		return nil, errs.NewValueIsInvalidErrorWithCause("matrix",
			fmt.Errorf("appended row/column need %d entries, got %d/%d", m.n, len(out), len(in)))
	}
	grown, _ := NewMatrix(m.n + 1)
	for i := 0; i < m.n; i++ {
		copy(grown.w[i*grown.n:i*grown.n+m.n], m.w[i*m.n:(i+1)*m.n])
	}
	k := m.n
	for j := 0; j < m.n; j++ {
		if err := grown.Set(k, j, out[j]); err != nil {
			return nil, err
		}
		if err := grown.Set(j, k, in[j]); err != nil {
			return nil, err
		}
	}
	return grown, nil
}

// Symmetric reports whether cost(i → j) == cost(j → i) for all pairs.
func (m *Matrix) Symmetric() bool {
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			if m.At(i, j) != m.At(j, i) {
				return false
			}
		}
	}
	return true
}

// TourCost sums cost along path. The diagonal holds NoEdge, so a path that
// repeats a node consecutively costs NoEdge.
func (m *Matrix) TourCost(path []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += m.At(path[i], path[i+1])
	}
	return total
}
