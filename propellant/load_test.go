package propellant

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/impulse-rocketry/libpropelleval/thermo"
)

func field(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// buildRecordLine assembles one fixed-column reactant record matching
// parseRecord's byte offsets: name at [9:39], up to six (coef[3],
// symbol[2]) pairs at stride 5 starting at 39, heat at [69:74],
// density at [75:80].
func buildRecordLine(name string, formula []ElementCoef, heatCal, densityLbIn3 float64) string {
	line := field("", 9) + field(name, 30)
	for _, ec := range formula {
		sym := thermo.ElementSymbol(ec.Element)
		coefStr := field(fmt.Sprintf("%.0f", ec.Coef), 3)
		line += coefStr + field(sym, 2)
	}
	line = field(line, 69)
	line += field(fmt.Sprintf("%.0f", heatCal), 5)
	line = field(line, 75)
	line += field(fmt.Sprintf("%.0f", densityLbIn3), 5)
	return line
}

func Test_parse_record(tst *testing.T) {
	chk.PrintTitle("parseRecord reads name, formula, heat and density")

	formula := []ElementCoef{{Element: 6, Coef: 1}, {Element: 1, Coef: 2}}
	line := buildRecordLine("RP-1", formula, 570, 1795)

	r, err := parseRecord(line)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.String(tst, r.Name, "RP-1")
	chk.IntAssert(len(r.Formula), 2)
	chk.IntAssert(r.Formula[0].Element, 6)
	chk.Float64(tst, "C coefficient", 1e-9, r.Formula[0].Coef, 1)
	chk.IntAssert(r.Formula[1].Element, 1)
	chk.Float64(tst, "H coefficient", 1e-9, r.Formula[1].Coef, 2)
	chk.Float64(tst, "Heat (J/g)", 1e-6, r.Heat, 570*calPerGramToJPerGram)
	chk.Float64(tst, "Density (g/cm^3)", 1e-6, r.Density, 1795*lbPerIn3ToGPerCm3)
}

func Test_load_skips_comments_and_handles_continuation(tst *testing.T) {
	chk.PrintTitle("Load skips '*' comments and appends '+' continuation lines")

	formula := []ElementCoef{{Element: 8, Coef: 2}}
	rec := buildRecordLine("O2(L)", formula, -300, 71)

	content := "* a comment line\n" + rec + "\n+ liquid oxygen\n"
	path := filepath.Join(tst.TempDir(), "propellants.dat")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tst.Fatalf("failed to write fixture: %v", err)
	}

	db, err := Load(path)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.IntAssert(len(db.Reactants), 1)
	chk.String(tst, db.Reactants[0].Name, "O2(L)liquid oxygen")
}
