// Package parse splits raw tabular cells into numeric literals and unit
// aliases. It is deliberately permissive: real exports carry scientific
// notation, stray signs, uneven whitespace, and a zoo of missing-value
// spellings, and all of that should classify cleanly instead of blowing up
// row by row.
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ============================================================================
// CELL SPLITTING
// ============================================================================

// cellPattern accepts a leading numeric literal followed by whatever is
// left as the alias: "1.5e3 lbs", "-5kg", " 20   pallets ".
var cellPattern = regexp.MustCompile(`^\s*([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)\s*(.+?)\s*$`)

// missingSentinels are the spellings that mean "no value", compared after
// folding.
var missingSentinels = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"none": {},
	"-":    {},
}

// Cell is one split compound cell.
type Cell struct {
	Number float64
	Alias  string
}

// Missing reports whether the cell is a missing-value sentinel.
func Missing(raw string) bool {
	_, ok := missingSentinels[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// Split extracts (number, alias) from a compound cell. ok is false when
// the cell has no leading number or no alias token. The alias must carry
// at least one letter; trailing bare digits are just more number, not a
// unit.
func Split(raw string) (Cell, bool) {
	m := cellPattern.FindStringSubmatch(raw)
	if m == nil {
		return Cell{}, false
	}
	alias := m[2]
	if !hasLetter(alias) {
		return Cell{}, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Cell{}, false
	}
	return Cell{Number: n, Alias: alias}, true
}

// Number parses a bare numeric cell.
func Number(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
