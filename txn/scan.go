package txn

import (
	"context"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/value"
)

// Scope is a scoped read or write handle on an Entity: Enter acquires the
// appropriate lock, Release always unlocks it, following the teacher's
// enter/run/release transaction lifecycle (engine/tx.go) so a caller can
// never forget to release a held lock as long as it defers Release right
// after Enter.
type Scope struct {
	entity   *Entity
	write    bool
	released bool
}

// Enter acquires a read (concurrent-reads-allowed) or write
// (write-exclusive) scope on entity.
func Enter(entity *Entity, write bool) *Scope {
	if write {
		entity.mu.Lock()
	} else {
		entity.mu.RLock()
	}
	return &Scope{entity: entity, write: write}
}

// Release unlocks the scope. It is safe to call more than once.
func (s *Scope) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.write {
		s.entity.mu.Unlock()
	} else {
		s.entity.mu.RUnlock()
	}
}

// Scan is an entity scan transaction: it reads the requested columns for
// each live (non-tombstoned) tuple id in ascending order.
type Scan struct {
	scope   *Scope
	entity  *Entity
	columns []catalogue.ColumnDef
}

// NewScan opens a read scope on entity and prepares a scan over the named
// columns.
func NewScan(entity *Entity, columns []string) *Scan {
	scope := Enter(entity, false)

	defs := make([]catalogue.ColumnDef, 0, len(columns))
	for _, name := range columns {
		if col, ok := entity.def.Column(name); ok {
			defs = append(defs, col)
		}
	}
	return &Scan{scope: scope, entity: entity, columns: defs}
}

// Release ends the scan, releasing its read scope.
func (s *Scan) Release() { s.scope.Release() }

func (s *Scan) readRow(ctx context.Context, rowID int64) (record.Record, bool, error) {
	vals := make([]value.Value, len(s.columns))
	for i, col := range s.columns {
		c := s.entity.columns[col.Name]
		if c.IsDeleted(rowID) {
			return record.Record{}, false, nil
		}
		v, err := c.Get(ctx, rowID)
		if err != nil {
			return record.Record{}, false, err
		}
		vals[i] = v
	}
	return record.Record{TupleID: rowID, Values: vals}, true, nil
}

// ForEach invokes action for every live tuple id in ascending order,
// spec.md §4.6's FullEntityScan.
func (s *Scan) ForEach(ctx context.Context, action func(record.Record) error) error {
	return s.ForEachRange(ctx, 0, s.entity.RowCount(), action)
}

// ForEachRange invokes action for every live tuple id in [lo, hi) in
// ascending order, spec.md §4.6's RangedEntityScan.
func (s *Scan) ForEachRange(ctx context.Context, lo, hi int64, action func(record.Record) error) error {
	for rowID := lo; rowID < hi; rowID++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, ok, err := s.readRow(ctx, rowID)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := action(rec); err != nil {
			return err
		}
	}
	return nil
}

// ForEachPredicate invokes action for every live tuple id whose record
// satisfies predicate, scanning the full entity.
func (s *Scan) ForEachPredicate(ctx context.Context, predicate func(record.Record) bool, action func(record.Record) error) error {
	return s.ForEachRangedPredicate(ctx, 0, s.entity.RowCount(), predicate, action)
}

// ForEachRangedPredicate invokes action for every live tuple id in
// [lo, hi) whose record satisfies predicate.
func (s *Scan) ForEachRangedPredicate(ctx context.Context, lo, hi int64, predicate func(record.Record) bool, action func(record.Record) error) error {
	return s.ForEachRange(ctx, lo, hi, func(rec record.Record) error {
		if !predicate(rec) {
			return nil
		}
		return action(rec)
	})
}
