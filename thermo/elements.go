package thermo

import "strings"

// atomicNumber maps the element symbols that appear in thermo and
// propellant formula fields (§6) to their atomic number, the element
// identity used throughout §3's Product.elements.
var atomicNumber = map[string]int{
	"H": 1, "HE": 2, "LI": 3, "BE": 4, "B": 5, "C": 6, "N": 7, "O": 8,
	"F": 9, "NE": 10, "NA": 11, "MG": 12, "AL": 13, "SI": 14, "P": 15,
	"S": 16, "CL": 17, "AR": 18, "K": 19, "CA": 20, "TI": 22, "CR": 24,
	"MN": 25, "FE": 26, "NI": 28, "CU": 29, "ZN": 30, "ZR": 40, "BA": 56,
	"E": 99, // free electron, conventional slot used by some NASA tables
}

// atomicWeight maps atomic number to standard atomic weight (g/mol),
// used to derive a reactant's molecular weight from its formula (§3:
// "total mass m = sum coef_i * M_i(reactant_i)" -- M_i is not stored
// directly but computed from the formula).
var atomicWeight = map[int]float64{
	1: 1.00794, 2: 4.002602, 3: 6.941, 4: 9.012182, 5: 10.811,
	6: 12.0107, 7: 14.0067, 8: 15.9994, 9: 18.9984032, 10: 20.1797,
	11: 22.98976928, 12: 24.305, 13: 26.9815386, 14: 28.0855,
	15: 30.973762, 16: 32.065, 17: 35.453, 18: 39.948, 19: 39.0983,
	20: 40.078, 22: 47.867, 24: 51.9961, 25: 54.938045, 26: 55.845,
	28: 58.6934, 29: 63.546, 30: 65.38, 40: 91.224, 56: 137.327,
	99: 0.00054858, // electron mass in g/mol
}

// AtomicWeight returns the standard atomic weight of an atomic
// number, or 0 if unknown.
func AtomicWeight(atomicNum int) float64 {
	return atomicWeight[atomicNum]
}

// ElementSymbol returns the canonical symbol for an atomic number, or
// "?" if unknown (used only for diagnostics/printing).
func ElementSymbol(atomicNum int) string {
	for sym, n := range atomicNumber {
		if n == atomicNum {
			return sym
		}
	}
	return "?"
}

// AtomicNumber looks up an element symbol (case-insensitive, trimmed).
// Returns (0, false) if the symbol is unknown.
func AtomicNumber(symbol string) (int, bool) {
	n, ok := atomicNumber[strings.ToUpper(strings.TrimSpace(symbol))]
	return n, ok
}
