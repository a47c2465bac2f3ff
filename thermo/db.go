package thermo

import "github.com/cpmech/gosl/chk"

// DB is a read-only, load-once table of thermo records, indexed by
// name for fast lookup (grounded on inp.MatDb's name-indexed subsets,
// inp/mat.go).
type DB struct {
	Species []Species
	index   map[string]int
}

// NewDB wraps an already-parsed species slice, building the name
// index. Used by Load and directly by tests that construct synthetic
// databases.
func NewDB(species []Species) *DB {
	db := &DB{Species: species, index: make(map[string]int, len(species))}
	for i, sp := range species {
		db.index[sp.Name] = i
	}
	return db
}

// Find returns the index of the named species, or -1.
func (db *DB) Find(name string) int {
	if i, ok := db.index[name]; ok {
		return i
	}
	return -1
}

// R is the universal gas constant in J/(mol*K), matching the R used
// to non-dimensionalise the NASA-9 polynomials.
const R = 8.31446261815324

// Enthalpy0 returns H°/RT (dimensionless) for species idx at
// temperature T, per RP-1311 §4.1.
func (db *DB) Enthalpy0(idx int, T float64) float64 {
	sp := db.species(idx)
	if sp.Assigned {
		return sp.AssignedEnth / (R * T)
	}
	iv, ok := sp.interval(T)
	if !ok {
		chk.Panic("thermo: species %q has no temperature intervals", sp.Name)
	}
	a := iv.A
	lnT := logT(T)
	return -a[0]/(T*T) + a[1]*lnT/T + a[2] + a[3]*T/2 + a[4]*T*T/3 +
		a[5]*T*T*T/4 + a[6]*T*T*T*T/5 + iv.B[0]/T
}

// Entropy0 returns S°/R (dimensionless) for species idx at
// temperature T.
func (db *DB) Entropy0(idx int, T float64) float64 {
	sp := db.species(idx)
	if sp.Assigned {
		return 0
	}
	iv, ok := sp.interval(T)
	if !ok {
		chk.Panic("thermo: species %q has no temperature intervals", sp.Name)
	}
	a := iv.A
	lnT := logT(T)
	return -a[0]/(2*T*T) - a[1]/T + a[2]*lnT + a[3]*T + a[4]*T*T/2 +
		a[5]*T*T*T/3 + a[6]*T*T*T*T/4 + iv.B[1]
}

// Cp0 returns Cp°/R (dimensionless heat capacity) for species idx at
// temperature T.
func (db *DB) Cp0(idx int, T float64) float64 {
	sp := db.species(idx)
	if sp.Assigned {
		return 0
	}
	iv, ok := sp.interval(T)
	if !ok {
		chk.Panic("thermo: species %q has no temperature intervals", sp.Name)
	}
	a := iv.A
	return a[0]/(T*T) + a[1]/T + a[2] + a[3]*T + a[4]*T*T + a[5]*T*T*T + a[6]*T*T*T*T
}

// Gibbs0 returns G°/RT = H°/RT - S°/R for species idx at temperature
// T.
func (db *DB) Gibbs0(idx int, T float64) float64 {
	return db.Enthalpy0(idx, T) - db.Entropy0(idx, T)
}

// ChemPotential returns the (reduced) chemical potential mu/RT for a
// gas-phase species given its mole fraction context, or the bare
// Gibbs0 for a condensed species (§4.1).
//
//	gas:       mu/RT = G0/RT + ln(nj/n) + ln(P * bar/atm)
//	condensed: mu/RT = G0/RT
func (db *DB) ChemPotential(idx int, T, nj, n, Patm float64) float64 {
	sp := db.species(idx)
	g0 := db.Gibbs0(idx, T)
	if sp.Phase == Condensed {
		return g0
	}
	const barPerAtm = 1.01325
	return g0 + logRatio(nj, n) + logT(Patm*barPerAtm)
}

func (db *DB) species(idx int) Species {
	if idx < 0 || idx >= len(db.Species) {
		chk.Panic("thermo: species index %d out of range [0,%d)", idx, len(db.Species))
	}
	return db.Species[idx]
}
