// Package record implements Cottontail's Record and RecordSet: the shape
// every scan, filter, and projection stage passes to the next, following
// spec.md §4.5.
package record

import (
	"sort"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/value"
)

// Record is one row: a tuple id plus a value for each column in its
// RecordSet's fixed column list.
type Record struct {
	TupleID int64
	Values  []value.Value
}

// RecordSet is a fixed-column sequence of Records. Every Record in a
// RecordSet holds exactly len(Columns) values in the same order, the
// invariant spec.md §3 states for record sets.
type RecordSet struct {
	Columns []catalogue.ColumnDef
	Records []Record
}

// New returns an empty RecordSet with the given column shape.
func New(columns []catalogue.ColumnDef) *RecordSet {
	return &RecordSet{Columns: columns}
}

// Append adds rec to the set. It panics if rec doesn't carry exactly one
// value per column — a programmer error in the execution layer, not a
// runtime condition a caller should recover from.
func (rs *RecordSet) Append(rec Record) {
	if len(rec.Values) != len(rs.Columns) {
		panic("record: appended row has the wrong number of values for this RecordSet's columns")
	}
	rs.Records = append(rs.Records, rec)
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int { return len(rs.Records) }

// ColumnIndex returns the position of a column by name, or -1 if absent.
func (rs *RecordSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Filter returns a new RecordSet holding only the records for which keep
// returns true.
func (rs *RecordSet) Filter(keep func(Record) bool) *RecordSet {
	out := New(rs.Columns)
	for _, r := range rs.Records {
		if keep(r) {
			out.Append(r)
		}
	}
	return out
}

// Project returns a new RecordSet restricted to the named columns, in the
// order given.
func (rs *RecordSet) Project(columns ...string) *RecordSet {
	indices := make([]int, len(columns))
	projected := make([]catalogue.ColumnDef, len(columns))
	for i, name := range columns {
		idx := rs.ColumnIndex(name)
		indices[i] = idx
		if idx >= 0 {
			projected[i] = rs.Columns[idx]
		}
	}

	out := New(projected)
	for _, r := range rs.Records {
		vals := make([]value.Value, len(indices))
		for i, idx := range indices {
			if idx >= 0 {
				vals[i] = r.Values[idx]
			}
		}
		out.Append(Record{TupleID: r.TupleID, Values: vals})
	}
	return out
}

// Distinct returns a new RecordSet with duplicate rows removed, comparing
// by every column's value. The first occurrence of a duplicate wins: rows
// are visited in order and a row whose key is already in the seen set is
// dropped.
func (rs *RecordSet) Distinct() *RecordSet {
	seen := make(map[string]bool, len(rs.Records))
	out := New(rs.Columns)
	for _, r := range rs.Records {
		key := rowKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Append(r)
	}
	return out
}

func rowKey(r Record) string {
	key := make([]byte, 0, len(r.Values)*8)
	for _, v := range r.Values {
		key = append(key, []byte(v.GoString())...)
		key = append(key, 0)
	}
	return string(key)
}

// Limit returns at most n records, after skipping the first skip.
func (rs *RecordSet) Limit(skip, n int) *RecordSet {
	out := New(rs.Columns)
	if skip >= len(rs.Records) {
		return out
	}
	end := skip + n
	if n < 0 || end > len(rs.Records) {
		end = len(rs.Records)
	}
	out.Records = append(out.Records, rs.Records[skip:end]...)
	return out
}

// Count returns the number of records.
func (rs *RecordSet) Count() int64 { return int64(len(rs.Records)) }

// Exists reports whether the set has at least one record.
func (rs *RecordSet) Exists() bool { return len(rs.Records) > 0 }

// Sort orders records by the named column, ascending unless desc is set.
// It is a supplemental helper, not an aggregation; Distinct does not use it.
func (rs *RecordSet) Sort(column string, desc bool) {
	idx := rs.ColumnIndex(column)
	if idx < 0 {
		return
	}
	sort.SliceStable(rs.Records, func(i, j int) bool {
		a, b := rs.Records[i].Values[idx], rs.Records[j].Values[idx]
		less := compareNumeric(a, b)
		if desc {
			return !less && a.GoString() != b.GoString()
		}
		return less
	})
}

func compareNumeric(a, b value.Value) bool {
	av, aerr := a.AsDouble()
	bv, berr := b.AsDouble()
	if aerr != nil || berr != nil {
		return a.GoString() < b.GoString()
	}
	return av < bv
}
