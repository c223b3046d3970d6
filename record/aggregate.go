package record

import (
	"fmt"
	"math"

	"github.com/gabuzi/cottontaildb/value"
)

// Min returns the smallest value of the named numeric column across the
// set's records, or +Inf if the set is empty or the column is all-NULL
// (spec.md §4.5's fixed empty-input result).
func (rs *RecordSet) Min(column string) (value.Value, error) {
	return rs.reduce(column, math.Inf(1), func(best, candidate float64) bool { return candidate < best })
}

// Max returns the largest value of the named numeric column, or -Inf if
// the set is empty or the column is all-NULL.
func (rs *RecordSet) Max(column string) (value.Value, error) {
	return rs.reduce(column, math.Inf(-1), func(best, candidate float64) bool { return candidate > best })
}

func (rs *RecordSet) reduce(column string, empty float64, better func(best, candidate float64) bool) (value.Value, error) {
	idx := rs.ColumnIndex(column)
	if idx < 0 {
		return value.Value{}, fmt.Errorf("record: unknown column %q", column)
	}

	best := empty
	bestVal := value.NewDouble(empty)
	found := false

	for _, r := range rs.Records {
		v := r.Values[idx]
		f, err := v.AsDouble()
		if err != nil {
			continue // skip NULL/non-numeric rows rather than failing the whole reduction
		}
		if !found || better(best, f) {
			best, bestVal, found = f, v, true
		}
	}
	return bestVal, nil
}

// Sum returns the sum of the named numeric column as a double, skipping
// NULL values.
func (rs *RecordSet) Sum(column string) (float64, error) {
	idx := rs.ColumnIndex(column)
	if idx < 0 {
		return 0, fmt.Errorf("record: unknown column %q", column)
	}
	var sum float64
	for _, r := range rs.Records {
		f, err := r.Values[idx].AsDouble()
		if err != nil {
			continue
		}
		sum += f
	}
	return sum, nil
}

// Mean returns the arithmetic mean of the named numeric column, counting
// only non-NULL rows in the denominator, or NaN if the set is empty or the
// column is all-NULL (spec.md §4.5's fixed empty-input result).
func (rs *RecordSet) Mean(column string) (float64, error) {
	idx := rs.ColumnIndex(column)
	if idx < 0 {
		return 0, fmt.Errorf("record: unknown column %q", column)
	}
	var sum float64
	var n int
	for _, r := range rs.Records {
		f, err := r.Values[idx].AsDouble()
		if err != nil {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return math.NaN(), nil
	}
	return sum / float64(n), nil
}
