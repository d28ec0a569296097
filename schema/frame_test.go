package schema

import (
	"math"
	"testing"
)

// ============================================================================
// FRAME TESTS
// ============================================================================

func TestFrameColumnsKeepOrder(t *testing.T) {
	f := NewFrame()
	if err := f.SetText("site", []string{"a", "b"}); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if err := f.SetFloats("weight", []float64{1, 2}); err != nil {
		t.Fatalf("SetFloats failed: %v", err)
	}
	if err := f.SetText("unit", []string{"kg", "kg"}); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}

	got := f.Columns()
	want := []string{"site", "weight", "unit"}
	if len(got) != len(want) {
		t.Fatalf("Columns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if f.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", f.Rows())
	}
}

func TestFrameRejectsRaggedColumns(t *testing.T) {
	f := NewFrame()
	if err := f.SetText("a", []string{"x", "y", "z"}); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if err := f.SetFloats("b", []float64{1}); err == nil {
		t.Fatal("expected mismatched column length to be rejected")
	}
	if err := f.SetText("", []string{"x", "y", "z"}); err == nil {
		t.Fatal("expected unnamed column to be rejected")
	}
}

func TestFrameAccessorsCopy(t *testing.T) {
	f := NewFrame()
	src := []float64{1, 2, 3}
	if err := f.SetFloats("v", src); err != nil {
		t.Fatalf("SetFloats failed: %v", err)
	}

	// Mutating the input after Set must not reach the frame.
	src[0] = 99
	got, ok := f.Floats("v")
	if !ok || got[0] != 1 {
		t.Errorf("Floats()[0] = %v, want 1", got[0])
	}

	// Mutating the returned copy must not reach the frame either.
	got[1] = 99
	again, _ := f.Floats("v")
	if again[1] != 2 {
		t.Errorf("frame column changed through a returned copy: %v", again[1])
	}

	if _, ok := f.Text("v"); ok {
		t.Error("Text() on a numeric column should report !ok")
	}
	if _, ok := f.Floats("absent"); ok {
		t.Error("Floats() on a missing column should report !ok")
	}
}

func TestFrameDropAndRename(t *testing.T) {
	f := NewFrame()
	_ = f.SetText("a", []string{"1"})
	_ = f.SetText("b", []string{"2"})
	_ = f.SetText("c", []string{"3"})

	f.Drop("b")
	f.Drop("ghost") // no-op
	if f.Has("b") || len(f.Columns()) != 2 {
		t.Fatalf("after Drop: columns = %v", f.Columns())
	}

	if err := f.Rename("c", "a"); err == nil {
		t.Fatal("Rename onto an existing column should fail")
	}
	if err := f.Rename("c", "z"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	cols := f.Columns()
	if cols[0] != "a" || cols[1] != "z" {
		t.Errorf("Rename broke ordering: %v", cols)
	}
}

func TestFrameCloneIsIndependent(t *testing.T) {
	f := NewFrame()
	_ = f.SetFloats("v", []float64{1, 2})
	_ = f.SetText("s", []string{"x", "y"})

	g := f.Clone()
	g.Drop("s")
	_ = g.SetFloats("v", []float64{7, 8})

	if !f.Has("s") {
		t.Error("Clone shares column registry with original")
	}
	v, _ := f.Floats("v")
	if v[0] != 1 {
		t.Errorf("Clone shares data with original: %v", v)
	}
}

func TestFrameFilter(t *testing.T) {
	f := NewFrame()
	_ = f.SetFloats("v", []float64{10, 20, 30, 40})
	_ = f.SetText("s", []string{"a", "b", "c", "d"})

	kept, err := f.Filter(Mask{true, false, false, true})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if kept.Rows() != 2 {
		t.Fatalf("Filter kept %d rows, want 2", kept.Rows())
	}
	v, _ := kept.Floats("v")
	s, _ := kept.Text("s")
	if v[0] != 10 || v[1] != 40 || s[0] != "a" || s[1] != "d" {
		t.Errorf("Filter rows wrong: %v %v", v, s)
	}

	if _, err := f.Filter(Mask{true}); err == nil {
		t.Error("short mask should be rejected")
	}
}

// ============================================================================
// MASK TESTS
// ============================================================================

func TestMaskCombinators(t *testing.T) {
	a := Mask{true, true, false, false}
	b := Mask{true, false, true, false}

	checks := []struct {
		name string
		got  Mask
		want Mask
	}{
		{"And", a.And(b), Mask{true, false, false, false}},
		{"Or", a.Or(b), Mask{true, true, true, false}},
		{"AndNot", a.AndNot(b), Mask{false, true, false, false}},
		{"Not", a.Not(), Mask{false, false, true, true}},
	}
	for _, c := range checks {
		for i := range c.want {
			if c.got[i] != c.want[i] {
				t.Errorf("%s[%d] = %v, want %v", c.name, i, c.got[i], c.want[i])
			}
		}
	}
	if n := a.Count(); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestMaskLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("And with mismatched lengths should panic")
		}
	}()
	Mask{true}.And(Mask{true, false})
}

func TestNaNSentinel(t *testing.T) {
	if !math.IsNaN(NaN) {
		t.Error("NaN sentinel is not NaN")
	}
}
