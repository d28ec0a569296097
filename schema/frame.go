package schema

import (
	"fmt"
	"math"
)

// ============================================================================
// FRAME — ordered named columns of equal length
// ============================================================================
// The pipeline's tabular currency. Columns are either raw text or float64;
// normalization turns the former into the latter. Frames hand out copies of
// their data and Normalize clones its input up front, so callers never see
// their frame mutated.
// ============================================================================

// Column is one named column, text or numeric backed.
type column struct {
	name   string
	text   []string
	floats []float64
}

func (c *column) numeric() bool { return c.floats != nil }

func (c *column) length() int {
	if c.numeric() {
		return len(c.floats)
	}
	return len(c.text)
}

// Frame holds equal-length named columns in insertion order.
type Frame struct {
	order []string
	cols  map[string]*column
	rows  int
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{cols: make(map[string]*column)}
}

// SetText adds or replaces a text column. The first column fixes the row
// count; later columns must match it.
func (f *Frame) SetText(name string, values []string) error {
	cp := make([]string, len(values))
	copy(cp, values)
	return f.set(&column{name: name, text: cp})
}

// SetFloats adds or replaces a numeric column.
func (f *Frame) SetFloats(name string, values []float64) error {
	cp := make([]float64, len(values))
	copy(cp, values)
	return f.set(&column{name: name, floats: cp})
}

func (f *Frame) set(c *column) error {
	if c.name == "" {
		return fmt.Errorf("schema: column needs a name")
	}
	if len(f.cols) == 0 {
		f.rows = c.length()
	} else if c.length() != f.rows {
		return fmt.Errorf("schema: column %q has %d rows, frame has %d", c.name, c.length(), f.rows)
	}
	if _, exists := f.cols[c.name]; !exists {
		f.order = append(f.order, c.name)
	}
	f.cols[c.name] = c
	return nil
}

// Rows returns the row count.
func (f *Frame) Rows() int { return f.rows }

// Columns returns column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// IsNumeric reports whether a column is float-backed.
func (f *Frame) IsNumeric(name string) bool {
	c, ok := f.cols[name]
	return ok && c.numeric()
}

// Text returns a copy of a text column. Numeric columns report ok=false;
// they are not rendered back to strings.
func (f *Frame) Text(name string) ([]string, bool) {
	c, ok := f.cols[name]
	if !ok || c.numeric() {
		return nil, false
	}
	cp := make([]string, len(c.text))
	copy(cp, c.text)
	return cp, true
}

// Floats returns a copy of a numeric column.
func (f *Frame) Floats(name string) ([]float64, bool) {
	c, ok := f.cols[name]
	if !ok || !c.numeric() {
		return nil, false
	}
	cp := make([]float64, len(c.floats))
	copy(cp, c.floats)
	return cp, true
}

// Drop removes a column. Unknown names are a no-op.
func (f *Frame) Drop(name string) {
	if _, ok := f.cols[name]; !ok {
		return
	}
	delete(f.cols, name)
	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if len(f.cols) == 0 {
		f.rows = 0
	}
}

// Rename moves a column to a new name, keeping its position.
func (f *Frame) Rename(old, new string) error {
	c, ok := f.cols[old]
	if !ok {
		return fmt.Errorf("schema: no column %q", old)
	}
	if _, taken := f.cols[new]; taken {
		return fmt.Errorf("schema: column %q already exists", new)
	}
	delete(f.cols, old)
	c.name = new
	f.cols[new] = c
	for i, n := range f.order {
		if n == old {
			f.order[i] = new
			break
		}
	}
	return nil
}

// Clone deep-copies the frame.
func (f *Frame) Clone() *Frame {
	out := NewFrame()
	for _, name := range f.order {
		c := f.cols[name]
		if c.numeric() {
			_ = out.SetFloats(name, c.floats)
		} else {
			_ = out.SetText(name, c.text)
		}
	}
	return out
}

// Filter returns a new frame holding only the rows where mask is true.
func (f *Frame) Filter(mask Mask) (*Frame, error) {
	if len(mask) != f.rows {
		return nil, fmt.Errorf("schema: mask has %d entries, frame has %d rows", len(mask), f.rows)
	}
	out := NewFrame()
	n := mask.Count()
	for _, name := range f.order {
		c := f.cols[name]
		if c.numeric() {
			vals := make([]float64, 0, n)
			for i, keep := range mask {
				if keep {
					vals = append(vals, c.floats[i])
				}
			}
			_ = out.SetFloats(name, vals)
		} else {
			vals := make([]string, 0, n)
			for i, keep := range mask {
				if keep {
					vals = append(vals, c.text[i])
				}
			}
			_ = out.SetText(name, vals)
		}
	}
	return out, nil
}

// floatsRef exposes the backing slice for in-package vectorized passes.
func (f *Frame) floatsRef(name string) []float64 {
	if c, ok := f.cols[name]; ok && c.numeric() {
		return c.floats
	}
	return nil
}

// textRef exposes the backing slice for in-package vectorized passes.
func (f *Frame) textRef(name string) []string {
	if c, ok := f.cols[name]; ok && !c.numeric() {
		return c.text
	}
	return nil
}

// NaN is the missing-value sentinel in numeric columns.
var NaN = math.NaN()

// ============================================================================
// MASK — boolean row selection
// ============================================================================
// Combination follows gonum's convention: operands must share a length,
// mismatches panic as programmer error.
// ============================================================================

// Mask is a per-row boolean selection vector.
type Mask []bool

// NewMask returns an all-false mask of n rows.
func NewMask(n int) Mask { return make(Mask, n) }

// And returns the element-wise AND of both masks.
func (m Mask) And(o Mask) Mask {
	checkMaskLen(m, o)
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] && o[i]
	}
	return out
}

// Or returns the element-wise OR of both masks.
func (m Mask) Or(o Mask) Mask {
	checkMaskLen(m, o)
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] || o[i]
	}
	return out
}

// AndNot returns the rows set in m but not in o.
func (m Mask) AndNot(o Mask) Mask {
	checkMaskLen(m, o)
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] && !o[i]
	}
	return out
}

// Not returns the inverted mask.
func (m Mask) Not() Mask {
	out := make(Mask, len(m))
	for i := range m {
		out[i] = !m[i]
	}
	return out
}

// Count returns the number of set rows.
func (m Mask) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

func checkMaskLen(a, b Mask) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("schema: mask length mismatch: %d vs %d", len(a), len(b)))
	}
}
