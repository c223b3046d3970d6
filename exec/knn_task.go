package exec

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/cterr"
	"github.com/gabuzi/cottontaildb/distance"
	"github.com/gabuzi/cottontaildb/plan"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/topk"
	"github.com/gabuzi/cottontaildb/txn"
	"github.com/gabuzi/cottontaildb/value"
)

// knnGroup is the shared state for one kNN task's m query vectors: m
// independent top-k heaps, each guarded by its own mutex so sub-scans
// admit into different heaps without contending on each other, matching
// spec.md §5's "the mutex is taken only for the admission, which is
// O(log k)".
type knnGroup struct {
	column  catalogue.ColumnDef
	kernel  distance.Kernel
	queries []value.Value
	weights []value.Value // same length as queries, value.Null() entries where unweighted
	k       int

	mus   []sync.Mutex
	heaps []*topk.Heap
}

func newKnnGroup(column catalogue.ColumnDef, kernel distance.Kernel, queries, weights []value.Value, k int) *knnGroup {
	g := &knnGroup{column: column, kernel: kernel, queries: queries, weights: weights, k: k}
	g.mus = make([]sync.Mutex, len(queries))
	g.heaps = make([]*topk.Heap, len(queries))
	for i := range queries {
		g.heaps[i] = topk.New(k)
	}
	return g
}

func (g *knnGroup) admit(tupleID int64, colValue value.Value) error {
	for i, q := range g.queries {
		w := value.Null()
		if i < len(g.weights) {
			w = g.weights[i]
		}
		dist, err := g.kernel.Eval(q, colValue, w)
		if err != nil {
			return err
		}
		g.mus[i].Lock()
		g.heaps[i].Offer(tupleID, dist)
		g.mus[i].Unlock()
	}
	return nil
}

// results assembles the final RecordSet: columns [tupleId (implicit via
// Record.TupleID), distance], m groups of up to k rows in heap-ascending
// order, groups in query order — spec.md §4.8's kNN execution contract.
func (g *knnGroup) results() *record.RecordSet {
	cols := []catalogue.ColumnDef{{Name: "distance", Kind: value.Double}}
	out := record.New(cols)
	for _, h := range g.heaps {
		for _, c := range h.Sorted() {
			out.Append(record.Record{TupleID: c.TupleID, Values: []value.Value{value.NewDouble(c.Distance)}})
		}
	}
	return out
}

// knnSubScanTask scans [start,end) of entity, optionally filtering rows,
// and admits every surviving row's column value into every query's heap
// in the shared knnGroup. It never returns a RecordSet of its own — the
// group accumulates results centrally — so Run always returns (nil, err).
type knnSubScanTask struct {
	entity  *txn.Entity
	columns []catalogue.ColumnDef // columns to fetch alongside the kNN column, for the filter
	knnCol  string
	start   int64
	end     int64
	filter  plan.Predicate
	group   *knnGroup
}

func (t *knnSubScanTask) Run(ctx context.Context) (*record.RecordSet, error) {
	names := make([]string, len(t.columns))
	idx := -1
	for i, c := range t.columns {
		names[i] = c.Name
		if c.Name == t.knnCol {
			idx = i
		}
	}

	scan := txn.NewScan(t.entity, names)
	defer scan.Release()

	var predErr, admitErr error
	visit := func(r record.Record) error {
		if idx < 0 || idx >= len(r.Values) {
			return &cterr.ExecutionError{Stage: "knn", Err: errColumnNotFetched}
		}
		if err := t.group.admit(r.TupleID, r.Values[idx]); err != nil {
			admitErr = &cterr.ExecutionError{Stage: "knn", Err: err}
			return nil
		}
		return nil
	}

	var err error
	if t.filter == nil {
		err = scan.ForEachRange(ctx, t.start, t.end, visit)
	} else {
		err = scan.ForEachRangedPredicate(ctx, t.start, t.end, func(r record.Record) bool {
			ok, evalErr := t.filter.Eval(r)
			if evalErr != nil {
				predErr = &cterr.ExecutionError{Stage: "filter", Err: evalErr}
				return false
			}
			return ok
		}, visit)
	}
	if err != nil {
		return nil, err
	}
	if predErr != nil {
		return nil, predErr
	}
	if admitErr != nil {
		return nil, admitErr
	}
	return nil, nil
}

var errColumnNotFetched = errors.New("exec: kNN column not present in fetched columns")

// runKnn partitions [0,rowCount) into degree ranges, runs a knnSubScanTask
// per range concurrently (spec.md §5 suspension point (b): "joining the
// parallel sub-scans of a kNN task"), and returns the merged top-k result.
func runKnn(ctx context.Context, entity *txn.Entity, columns []catalogue.ColumnDef, filter plan.Predicate, column catalogue.ColumnDef, kernel distance.Kernel, queries, weights []value.Value, k, degree int) (*record.RecordSet, error) {
	group := newKnnGroup(column, kernel, queries, weights, k)

	rowCount := entity.RowCount()
	ranges := splitRanges(rowCount, degree)

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range ranges {
		r := r
		task := &knnSubScanTask{entity: entity, columns: columns, knnCol: column.Name, start: r[0], end: r[1], filter: filter, group: group}
		g.Go(func() error {
			_, err := task.Run(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return group.results(), nil
}
