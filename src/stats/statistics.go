// Package stats implements per-column statistics accumulation, merged from
// stripe to file level the way ORC's footer messages require.
package stats

import "github.com/kokes/orcwrite/src/schema"

// Statistics accumulates per-column aggregates as values are written. Only
// the fields relevant to the column's Kind are meaningful; the rest stay at
// their zero value. A fresh Statistics is NumValues == 0, HasMinMax == false.
type Statistics struct {
	Kind schema.Kind

	NumValues int64
	NumNulls  int64

	HasMinMax bool

	IntMin, IntMax int64
	IntSum         int64
	IntSumOverflow bool

	DoubleMin, DoubleMax float64
	DoubleSum            float64

	StringMin, StringMax string
	TotalLength          int64

	TrueCount int64
}

// New returns a zeroed Statistics for a column of the given kind.
func New(k schema.Kind) *Statistics {
	return &Statistics{Kind: k}
}

// AddNull records one null value: counted in NumValues per spec §4.3 ("a
// leaf's write(None) ... updates null stats"), but contributes no min/max/sum.
func (s *Statistics) AddNull() {
	s.NumValues++
	s.NumNulls++
}

func (s *Statistics) AddBool(v bool) {
	s.NumValues++
	if v {
		s.TrueCount++
	}
}

func (s *Statistics) AddInt(v int64) {
	s.NumValues++
	if !s.HasMinMax {
		s.IntMin, s.IntMax = v, v
		s.HasMinMax = true
	} else {
		if v < s.IntMin {
			s.IntMin = v
		}
		if v > s.IntMax {
			s.IntMax = v
		}
	}
	sum := s.IntSum + v
	if (v > 0 && sum < s.IntSum) || (v < 0 && sum > s.IntSum) {
		s.IntSumOverflow = true
	}
	s.IntSum = sum
}

func (s *Statistics) AddDouble(v float64) {
	s.NumValues++
	if !s.HasMinMax {
		s.DoubleMin, s.DoubleMax = v, v
		s.HasMinMax = true
	} else {
		if v < s.DoubleMin {
			s.DoubleMin = v
		}
		if v > s.DoubleMax {
			s.DoubleMax = v
		}
	}
	s.DoubleSum += v
}

func (s *Statistics) AddString(v string) {
	s.NumValues++
	s.TotalLength += int64(len(v))
	if !s.HasMinMax {
		s.StringMin, s.StringMax = v, v
		s.HasMinMax = true
	} else {
		if v < s.StringMin {
			s.StringMin = v
		}
		if v > s.StringMax {
			s.StringMax = v
		}
	}
}

// AddPresence records a parent row's PRESENT bit without touching any
// type-specific aggregate - used by Struct, List and Map columns, whose
// "value" is the presence of a composite, not a scalar.
func (s *Statistics) AddPresence() {
	s.NumValues++
}

// Merge folds other into s, the way stripe-level statistics are combined
// into the file-level Statistics reported in the FileFooter.
func (s *Statistics) Merge(other *Statistics) {
	s.NumValues += other.NumValues
	s.NumNulls += other.NumNulls
	s.TrueCount += other.TrueCount
	s.TotalLength += other.TotalLength
	s.IntSum += other.IntSum
	s.DoubleSum += other.DoubleSum
	if other.IntSumOverflow {
		s.IntSumOverflow = true
	}

	if !other.HasMinMax {
		return
	}
	if !s.HasMinMax {
		s.IntMin, s.IntMax = other.IntMin, other.IntMax
		s.DoubleMin, s.DoubleMax = other.DoubleMin, other.DoubleMax
		s.StringMin, s.StringMax = other.StringMin, other.StringMax
		s.HasMinMax = true
		return
	}
	if other.IntMin < s.IntMin {
		s.IntMin = other.IntMin
	}
	if other.IntMax > s.IntMax {
		s.IntMax = other.IntMax
	}
	if other.DoubleMin < s.DoubleMin {
		s.DoubleMin = other.DoubleMin
	}
	if other.DoubleMax > s.DoubleMax {
		s.DoubleMax = other.DoubleMax
	}
	if other.StringMin < s.StringMin {
		s.StringMin = other.StringMin
	}
	if other.StringMax > s.StringMax {
		s.StringMax = other.StringMax
	}
}

// Reset zeroes the accumulator in place, for reuse across stripes without a
// fresh allocation per column.
func (s *Statistics) Reset() {
	*s = Statistics{Kind: s.Kind}
}
