// Package linsolve is the abstract dense linear solver the rest of
// the core depends on: solve(A, b) -> x for an n×n dense system,
// failing with ErrSingular. Backed by gonum/mat's LU factorization,
// the pack's only dense (as opposed to FE-sparse) linear algebra
// library (grounded on the gonum/mat usage in the retrieved examples
// pack, see DESIGN.md).
package linsolve

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when A is numerically singular (or
// ill-conditioned past the point where a solution can be trusted).
var ErrSingular = errors.New("linsolve: singular matrix")

// Solve returns x such that A*x = b, where A is n×n (row-major,
// A[i][j]) and b has length n. Returns ErrSingular if A cannot be
// factored.
func Solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	if n == 0 {
		return nil, nil
	}
	flat := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		flat = append(flat, a[i]...)
	}
	A := mat.NewDense(n, n, flat)
	B := mat.NewVecDense(n, append([]float64(nil), b...))

	var lu mat.LU
	lu.Factorize(A)
	if cond := lu.Cond(); cond > 1e14 || isInfOrNaN(cond) {
		return nil, ErrSingular
	}

	var X mat.VecDense
	if err := lu.SolveVecTo(&X, false, B); err != nil {
		return nil, ErrSingular
	}

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = X.AtVec(i)
	}
	return x, nil
}

func isInfOrNaN(x float64) bool {
	return x != x || x > 1e300 || x < -1e300
}
