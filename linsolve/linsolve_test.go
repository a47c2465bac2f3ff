package linsolve

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_solve_small_system(tst *testing.T) {
	chk.PrintTitle("solve a well-conditioned 2x2 system")

	// 2x + y = 5; x + 3y = 10  =>  x = 1, y = 3
	a := [][]float64{
		{2, 1},
		{1, 3},
	}
	b := []float64{5, 10}

	x, err := Solve(a, b)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Float64(tst, "x", 1e-10, x[0], 1.0)
	chk.Float64(tst, "y", 1e-10, x[1], 3.0)
}

func Test_solve_singular_system_errors(tst *testing.T) {
	chk.PrintTitle("singular matrix returns ErrSingular")

	a := [][]float64{
		{1, 2},
		{2, 4}, // row 2 = 2 * row 1: singular
	}
	b := []float64{3, 6}

	_, err := Solve(a, b)
	if err != ErrSingular {
		tst.Fatalf("expected ErrSingular, got %v", err)
	}
}
