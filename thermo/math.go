package thermo

import "math"

func logT(x float64) float64 { return math.Log(x) }

func logRatio(a, b float64) float64 { return math.Log(a / b) }
