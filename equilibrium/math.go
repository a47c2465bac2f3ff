package equilibrium

import "math"

func logf(x float64) float64 { return math.Log(x) }

func logRatio(a, b float64) float64 { return math.Log(a / b) }
