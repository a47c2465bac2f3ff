package thermo

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Load parses a NASA-9 coefficient thermo file in the fixed 80-column
// format of §6: a header line per species (name, comments, nint,
// id, state, weight, heat), followed either by one reference-
// temperature line (nint==0) or by nint 3-line interval blocks.
//
// Comment lines (leading ' ', '!' or '-') are skipped. A record whose
// Heat field is zero and whose formula matches the immediately
// preceding record inherits that record's heat of formation — a
// database-content quirk of the original loader preserved exactly
// (§9).
func Load(path string) (*DB, error) {
	raw, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("thermo: cannot read %q: %v", path, err)
	}
	lines := strings.Split(string(raw), "\n")

	var species []Species
	var prev *Species
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isComment(line) {
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		sp, consumed, err := parseHeaderAndBody(lines, i)
		if err != nil {
			return nil, chk.Err("thermo: %q near line %d: %v", path, i+1, err)
		}
		if sp.Heat298 == 0 && prev != nil && sp.SameFormula(*prev) {
			sp.Heat298 = prev.Heat298
		}
		species = append(species, sp)
		prev = &species[len(species)-1]
		i += consumed - 1
	}
	return NewDB(species), nil
}

func isComment(line string) bool {
	if len(line) == 0 {
		return false
	}
	switch line[0] {
	case ' ', '!', '-':
		return true
	}
	return false
}

func parseHeaderAndBody(lines []string, i int) (Species, int, error) {
	header := padTo(lines[i], 108)

	name := strings.TrimSpace(header[0:18])
	comments := header[18:73]
	id := strings.TrimSpace(header[75:81])
	nint := io.Atoi(strings.TrimSpace(header[73:75]))
	stateCol := header[81]
	weight := io.Atof(strings.TrimSpace(header[82:95]))
	heat := io.Atof(strings.TrimSpace(header[95:108]))

	sp := Species{
		Name:    name,
		ID:      id,
		Weight:  weight,
		Formula: parseThermoFormula(comments),
	}
	if stateCol == '0' {
		sp.Phase = Gas
	} else {
		sp.Phase = Condensed
	}
	sp.Heat298 = heat

	consumed := 1
	if nint == 0 {
		refLine := padTo(lines[i+1], 11)
		sp.Assigned = true
		sp.AssignedEnth = heat
		sp.RefTemperature = io.Atof(strings.TrimSpace(refLine[1:11]))
		consumed = 2
		return sp, consumed, nil
	}

	sp.Intervals = make([]Interval, 0, nint)
	for k := 0; k < nint; k++ {
		base := i + 1 + k*3
		l1 := padTo(lines[base], 80)
		l2 := padTo(lines[base+1], 80)
		l3 := padTo(lines[base+2], 80)

		var iv Interval
		iv.Lo = io.Atof(strings.TrimSpace(l1[1:11]))
		iv.Hi = io.Atof(strings.TrimSpace(l1[11:21]))

		iv.B[0] = 0 // set below from l3
		iv.B[1] = 0

		// 5 coefficients of 16 chars on l2
		for c := 0; c < 5; c++ {
			s := l2[c*16 : c*16+16]
			iv.A[c] = io.Atof(strings.TrimSpace(s))
		}
		// 2 + 2 coefficients on l3: a5,a6 at [0..32), b1,b2 at [48..80)
		iv.A[5] = io.Atof(strings.TrimSpace(l3[0:16]))
		iv.A[6] = io.Atof(strings.TrimSpace(l3[16:32]))
		iv.B[0] = io.Atof(strings.TrimSpace(l3[48:64]))
		iv.B[1] = io.Atof(strings.TrimSpace(l3[64:80]))

		sp.Intervals = append(sp.Intervals, iv)
		consumed += 3
	}

	return sp, consumed, nil
}

// parseThermoFormula reads up to MaxFormulaElements (symbol[2],
// coef[6]) pairs packed at the start of the comments span (§6); the
// remaining characters, if any, are free-text comment and are
// ignored. A slot with a blank symbol or zero coefficient ends the
// formula early.
func parseThermoFormula(comments string) []ElementCoef {
	const stride = 8
	var out []ElementCoef
	for k := 0; k < MaxFormulaElements; k++ {
		start := k * stride
		if start+stride > len(comments) {
			break
		}
		sym := strings.TrimSpace(comments[start : start+2])
		coefStr := strings.TrimSpace(comments[start+2 : start+stride])
		if sym == "" || coefStr == "" {
			break
		}
		num, ok := AtomicNumber(sym)
		if !ok {
			break
		}
		coef := io.Atof(coefStr)
		if coef == 0 {
			break
		}
		out = append(out, ElementCoef{Element: num, Coef: coef})
	}
	return out
}

func padTo(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
