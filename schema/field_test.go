package schema

import (
	"strings"
	"testing"
)

// ============================================================================
// SCHEMA DECLARATION TESTS
// ============================================================================

var shipmentYAML = []byte(`
name: shipments
fields:
  - name: weight_kg
    source: weight
    unit: kg
    dimension: mass
    parse_string: true
    min: 0
    round: 2
    on_error: raise
  - name: dist
    unit: km
    dimension: length
    source_unit: m
  - name: qty
    unit: kg
    dimension: mass
    unit_col: qty_unit
    drop_raw: false
keep: [site]
`)

func TestLoadSchema(t *testing.T) {
	s, err := LoadSchema(strings.NewReader(string(shipmentYAML)))
	if err != nil {
		t.Fatalf("LoadSchema failed: %v", err)
	}
	if s.Name != "shipments" || len(s.Fields) != 3 {
		t.Fatalf("got %q with %d fields", s.Name, len(s.Fields))
	}

	w := s.Fields[0]
	if w.Source != "weight" || !w.ParseString || w.OnError != OnErrorRaise {
		t.Errorf("weight field = %+v", w)
	}
	if w.Min == nil || *w.Min != 0 {
		t.Errorf("weight min = %v, want 0", w.Min)
	}
	if w.Round == nil || *w.Round != 2 {
		t.Errorf("weight round = %v, want 2", w.Round)
	}
	if w.Max != nil {
		t.Errorf("weight max = %v, want unset", w.Max)
	}

	d := s.Fields[1]
	if d.sourceColumn() != "dist" || d.SourceUnit != "m" {
		t.Errorf("dist field = %+v", d)
	}

	q := s.Fields[2]
	if q.UnitCol != "qty_unit" {
		t.Errorf("qty unit_col = %q", q.UnitCol)
	}
	if q.DropRaw == nil || *q.DropRaw {
		t.Errorf("qty drop_raw = %v, want false", q.DropRaw)
	}

	if len(s.Keep) != 1 || s.Keep[0] != "site" {
		t.Errorf("keep = %v", s.Keep)
	}
}

func TestLoadSchemaBadYAML(t *testing.T) {
	_, err := LoadSchema(strings.NewReader("fields: [not a field"))
	if err == nil || !strings.Contains(err.Error(), "parsing declaration") {
		t.Errorf("err = %v, want a parse failure", err)
	}
}

func TestSchemaValidate(t *testing.T) {
	min5, max2 := 5.0, 2.0
	negRound := -1
	cases := []struct {
		name string
		s    Schema
		want string
	}{
		{"no fields", Schema{}, "no fields"},
		{"unnamed field", Schema{Fields: []Field{{Unit: "kg"}}}, "has no name"},
		{
			"duplicate names",
			Schema{Fields: []Field{{Name: "w", Unit: "kg"}, {Name: "w", Unit: "g"}}},
			"duplicate field",
		},
		{"missing unit", Schema{Fields: []Field{{Name: "w"}}}, "no target unit"},
		{
			"bad on_error",
			Schema{Fields: []Field{{Name: "w", Unit: "kg", OnError: "explode"}}},
			"on_error",
		},
		{
			"inverted bounds",
			Schema{Fields: []Field{{Name: "w", Unit: "kg", Min: &min5, Max: &max2}}},
			"min 5 above max 2",
		},
		{
			"negative round",
			Schema{Fields: []Field{{Name: "w", Unit: "kg", Round: &negRound}}},
			"round",
		},
	}
	for _, c := range cases {
		err := c.s.Validate()
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: err = %v, want mention of %q", c.name, err, c.want)
		}
	}

	ok := Schema{Fields: []Field{{Name: "w", Unit: "kg", OnError: OnErrorCoerce}}}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid schema rejected: %v", err)
	}
}
