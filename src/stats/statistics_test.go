package stats

import (
	"testing"

	"github.com/kokes/orcwrite/src/schema"
)

func TestAddIntMinMaxSum(t *testing.T) {
	s := New(schema.KindLong)
	for _, v := range []int64{5, -3, 17, 0} {
		s.AddInt(v)
	}
	if s.NumValues != 4 {
		t.Errorf("expecting 4 values, got %v", s.NumValues)
	}
	if s.IntMin != -3 || s.IntMax != 17 {
		t.Errorf("expecting min -3 max 17, got min %v max %v", s.IntMin, s.IntMax)
	}
	if s.IntSum != 19 {
		t.Errorf("expecting sum 19, got %v", s.IntSum)
	}
}

func TestAddNullCountsValueAndNull(t *testing.T) {
	s := New(schema.KindString)
	s.AddString("a")
	s.AddNull()
	if s.NumValues != 2 {
		t.Errorf("expecting 2 values, got %v", s.NumValues)
	}
	if s.NumNulls != 1 {
		t.Errorf("expecting 1 null, got %v", s.NumNulls)
	}
}

func TestMergeCombinesMinMax(t *testing.T) {
	a := New(schema.KindLong)
	a.AddInt(10)
	a.AddInt(20)
	b := New(schema.KindLong)
	b.AddInt(-5)
	b.AddInt(30)
	a.Merge(b)
	if a.IntMin != -5 || a.IntMax != 30 {
		t.Errorf("expecting min -5 max 30, got min %v max %v", a.IntMin, a.IntMax)
	}
	if a.NumValues != 4 {
		t.Errorf("expecting 4 values, got %v", a.NumValues)
	}
	if a.IntSum != 55 {
		t.Errorf("expecting sum 55, got %v", a.IntSum)
	}
}

func TestMergeEmptyIntoEmpty(t *testing.T) {
	a := New(schema.KindDouble)
	b := New(schema.KindDouble)
	a.Merge(b)
	if a.HasMinMax {
		t.Error("expecting no min/max after merging two empty accumulators")
	}
}

func TestResetClearsState(t *testing.T) {
	s := New(schema.KindLong)
	s.AddInt(5)
	s.Reset()
	if s.NumValues != 0 || s.HasMinMax {
		t.Error("expecting a cleared accumulator after Reset")
	}
	if s.Kind != schema.KindLong {
		t.Error("expecting Reset to preserve Kind")
	}
}
