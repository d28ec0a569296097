package schema

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// SCHEMA DECLARATION
// ============================================================================
// A Schema names the quantity columns of a dataset and the target unit each
// one lands in. Fields are declarative and YAML-friendly; hooks are Go-only
// escape hatches that run around the normalization pass.
// ============================================================================

// Field declares one output column.
//
// The source column is read in one of four modes, picked from the
// declaration itself:
//
//   - unit_col names a second column carrying a unit alias per row;
//   - parse_string splits each text cell into number and unit
//     ("12.5 kg" style), with source_unit as the fallback for bare numbers;
//   - a numeric source column is taken as magnitudes in source_unit;
//   - otherwise text cells are read as bare numbers in source_unit.
type Field struct {
	// Name is the output column. It doubles as the source column when
	// Source is empty.
	Name string `yaml:"name" json:"name"`
	// Source is the input column, when it differs from Name.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	// Unit is the target unit alias every value converts into.
	Unit string `yaml:"unit" json:"unit"`
	// Dimension disambiguates shared aliases, for the target and for
	// per-cell units alike.
	Dimension string `yaml:"dimension,omitempty" json:"dimension,omitempty"`
	// ParseString turns on per-cell number/unit splitting for text
	// sources.
	ParseString bool `yaml:"parse_string,omitempty" json:"parse_string,omitempty"`
	// SourceUnit is assumed for cells that carry no unit of their own.
	SourceUnit string `yaml:"source_unit,omitempty" json:"source_unit,omitempty"`
	// UnitCol names a column holding each row's unit alias.
	UnitCol string `yaml:"unit_col,omitempty" json:"unit_col,omitempty"`
	// Min and Max bound the converted value, in target units.
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	// Round keeps that many decimals, applied after the bound check.
	Round *int `yaml:"round,omitempty" json:"round,omitempty"`
	// OnError is "coerce" (default, failures become NaN) or "raise"
	// (failures aggregate into a NormalizationError).
	OnError string `yaml:"on_error,omitempty" json:"on_error,omitempty"`
	// DropRaw controls whether the raw source column is discarded.
	// Unset follows the run-level default, which is to drop.
	DropRaw *bool `yaml:"drop_raw,omitempty" json:"drop_raw,omitempty"`
	// Context feeds unit formulas, e.g. grid intensity for MWh-grid.
	Context map[string]any `yaml:"context,omitempty" json:"context,omitempty"`
}

// sourceColumn is the column this field reads.
func (f *Field) sourceColumn() string {
	if f.Source != "" {
		return f.Source
	}
	return f.Name
}

func (f *Field) raises() bool { return f.OnError == OnErrorRaise }

// dropsRaw resolves the field's drop_raw against the run default.
func (f *Field) dropsRaw(def bool) bool {
	if f.DropRaw != nil {
		return *f.DropRaw
	}
	return def
}

// OnError policies.
const (
	OnErrorCoerce = "coerce"
	OnErrorRaise  = "raise"
)

// Hook transforms a frame before or after normalization.
type Hook func(*Frame) (*Frame, error)

// Schema is a set of fields plus the unmapped columns to carry through.
type Schema struct {
	Name   string  `yaml:"name,omitempty" json:"name,omitempty"`
	Fields []Field `yaml:"fields" json:"fields"`
	// Keep lists unmapped columns preserved in the output.
	Keep []string `yaml:"keep,omitempty" json:"keep,omitempty"`

	// Pre and Post run around the normalization pass. Not expressible
	// in YAML.
	Pre  Hook `yaml:"-" json:"-"`
	Post Hook `yaml:"-" json:"-"`
}

// Validate checks the declaration for internal consistency.
func (s *Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema: no fields declared")
	}
	seen := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("schema: field %d has no name", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema: duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		if f.Unit == "" {
			return fmt.Errorf("schema: field %q has no target unit", f.Name)
		}
		switch f.OnError {
		case "", OnErrorCoerce, OnErrorRaise:
		default:
			return fmt.Errorf("schema: field %q: on_error must be %q or %q, got %q",
				f.Name, OnErrorCoerce, OnErrorRaise, f.OnError)
		}
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("schema: field %q: min %v above max %v", f.Name, *f.Min, *f.Max)
		}
		if f.Round != nil && *f.Round < 0 {
			return fmt.Errorf("schema: field %q: round must be >= 0", f.Name)
		}
	}
	return nil
}

// LoadSchema reads a YAML schema declaration.
func LoadSchema(r io.Reader) (*Schema, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("schema: reading declaration: %w", err)
	}
	var s Schema
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("schema: parsing declaration: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
