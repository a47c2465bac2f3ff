package propellant

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// calPerGramToJPerGram converts heat from cal/g to J/g (§6).
const calPerGramToJPerGram = 4.1868

// lbPerIn3ToGPerCm3 converts density from lb/in^3 to g/cm^3 (§6).
const lbPerIn3ToGPerCm3 = 27.679905

// Load parses a propellant database file in the fixed-column format
// of §6: one record per line, except lines starting with '*'
// (comment) which are skipped, and lines starting with '+' which
// continue the previous record's name.
func Load(path string) (*DB, error) {
	raw, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("propellant: cannot read %q: %v", path, err)
	}
	lines := strings.Split(string(raw), "\n")

	var reactants []Reactant
	for _, line := range lines {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		switch line[0] {
		case '*':
			continue
		case '+':
			if len(reactants) == 0 {
				return nil, chk.Err("propellant: %q: continuation line with no preceding record", path)
			}
			last := &reactants[len(reactants)-1]
			last.Name += strings.TrimSpace(line[1:])
			continue
		}
		r, err := parseRecord(line)
		if err != nil {
			return nil, chk.Err("propellant: %q: %v", path, err)
		}
		reactants = append(reactants, r)
	}
	return NewDB(reactants), nil
}

func parseRecord(line string) (Reactant, error) {
	line = padTo(line, 80)

	name := strings.TrimSpace(line[9:39])
	r := Reactant{Name: name}

	const stride = 5
	for k := 0; k < MaxFormulaElements; k++ {
		start := 39 + k*stride
		coefStr := strings.TrimSpace(line[start : start+3])
		sym := strings.TrimSpace(line[start+3 : start+stride])
		if sym == "" || coefStr == "" {
			continue
		}
		num, ok := thermo.AtomicNumber(sym)
		if !ok {
			continue
		}
		coef := io.Atof(coefStr)
		if coef == 0 {
			continue
		}
		r.Formula = append(r.Formula, ElementCoef{Element: num, Coef: coef})
	}

	heatCal := io.Atof(strings.TrimSpace(line[69:74]))
	densityLbIn3 := io.Atof(strings.TrimSpace(line[75:80]))
	r.Heat = heatCal * calPerGramToJPerGram
	r.Density = densityLbIn3 * lbPerIn3ToGPerCm3
	return r, nil
}

func padTo(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
