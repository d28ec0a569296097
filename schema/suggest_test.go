package schema

import (
	"testing"

	"github.com/caliper-org/caliper/units"
)

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"kg", "kg", 0},
		{"kg", "g", 1},
		{"gallom", "gallon", 1},
		{"metre", "meter", 2},
		{"celcius", "celsius", 1},
	}
	for _, c := range cases {
		if got := editDistance(c.a, c.b, 3); got != c.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}

	// Past the limit the exact value does not matter, only that it
	// reports out of range.
	if got := editDistance("pallets", "kilograms", 2); got <= 2 {
		t.Errorf("editDistance(pallets, kilograms, 2) = %d, want > 2", got)
	}
}

func TestSuggestUnit(t *testing.T) {
	reg := units.Default()
	cases := []struct {
		alias, dim, want string
	}{
		{"kilogramm", "mass", "kilogram"},
		{"celcius", "temperature", "celsius"},
		{"gallom", "volume", "gallon"},
		{"pallets", "mass", ""},
		{"", "mass", ""},
	}
	for _, c := range cases {
		if got := suggestUnit(reg, c.alias, c.dim); got != c.want {
			t.Errorf("suggestUnit(%q, %q) = %q, want %q", c.alias, c.dim, got, c.want)
		}
	}

	// Without a dimension every dimension competes.
	if got := suggestUnit(reg, "kilogramm", ""); got != "kilogram" {
		t.Errorf("suggestUnit(kilogramm) = %q, want kilogram", got)
	}
}
