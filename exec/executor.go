package exec

import (
	"context"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/plan"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/txn"
)

// Execute runs a bound logical plan against entity: it splits the scan
// (and, if present, the kNN sub-scan) into degree parallel tasks per
// spec.md §4.7's "RangedEntityScan with parallelism > 1" rule and merges
// their output (a plain scan through an ALL stage, a kNN scan through
// runKnn's own fan-out), then applies the outer Projection/Limit directly
// to the merged set, since both are global operations that need every
// partition's output before they can run.
//
// degree <= 1 runs every scan as a single task, the serial path.
func Execute(ctx context.Context, root plan.Node, entity *txn.Entity, degree int) (*record.RecordSet, error) {
	inner, proj, lim := splitGlobalOps(root)
	fetch := findFetchColumns(inner)
	var columns []catalogue.ColumnDef
	if fetch != nil {
		columns = fetch.Columns
	}
	filter := findFilterPredicate(inner)
	knn := findKnnPredicate(inner)

	var rs *record.RecordSet
	var err error
	if knn != nil {
		rs, err = runKnn(ctx, entity, columns, predicateOf(filter), knn.Column, knn.Kernel, knn.Queries, knn.Weights, knn.K, degree)
	} else {
		rs, err = runScanStage(ctx, entity, columns, predicateOf(filter), degree)
	}
	if err != nil {
		return nil, err
	}

	if proj != nil {
		rs, err = applyProjection(rs, proj)
		if err != nil {
			return nil, err
		}
	}
	if lim != nil {
		n := lim.N
		if n < 0 {
			n = rs.Len()
		}
		rs = rs.Limit(lim.Skip, n)
	}
	return rs, nil
}

func predicateOf(f *plan.FilterPredicate) plan.Predicate {
	if f == nil {
		return nil
	}
	return f.Predicate
}

// runScanStage builds one scanTask per range split and runs them as a
// single MergeAll Stage.
func runScanStage(ctx context.Context, entity *txn.Entity, columns []catalogue.ColumnDef, filter plan.Predicate, degree int) (*record.RecordSet, error) {
	ranges := splitRanges(entity.RowCount(), degree)
	tasks := make([]Task, len(ranges))
	for i, r := range ranges {
		tasks[i] = &scanTask{entity: entity, columns: columns, start: r[0], end: r[1], filter: filter}
	}
	stage := &Stage{Rule: MergeAll, Tasks: tasks}
	return stage.Run(ctx)
}

// splitGlobalOps strips the outermost Limit and Projection nodes (global
// operations that must see every partition's output before they can run)
// and returns what remains, which ends in a scan.
func splitGlobalOps(root plan.Node) (inner plan.Node, proj *plan.Projection, lim *plan.Limit) {
	cur := root
	if l, ok := cur.(*plan.Limit); ok {
		lim = l
		cur = l.Input()
	}
	if p, ok := cur.(*plan.Projection); ok {
		proj = p
		cur = p.Input()
	}
	return cur, proj, lim
}

func findFetchColumns(n plan.Node) *plan.FetchColumns {
	for n != nil {
		if f, ok := n.(*plan.FetchColumns); ok {
			return f
		}
		n = n.Input()
	}
	return nil
}

func findFilterPredicate(n plan.Node) *plan.FilterPredicate {
	for n != nil {
		if f, ok := n.(*plan.FilterPredicate); ok {
			return f
		}
		n = n.Input()
	}
	return nil
}

func findKnnPredicate(n plan.Node) *plan.KnnPredicate {
	for n != nil {
		if k, ok := n.(*plan.KnnPredicate); ok {
			return k
		}
		n = n.Input()
	}
	return nil
}
