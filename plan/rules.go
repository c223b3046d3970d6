package plan

// Split divides a RangedEntityScan-rooted plan into at most degree
// independent plans over disjoint, contiguous row ranges of equal size (the
// last may be shorter), each carrying the same operator chain above the
// scan. The executor does not call Split; it partitions kNN scans itself
// with the same chunking rule.
//
// Split only rewrites a plan whose root scan is a RangedEntityScan or
// FullEntityScan; any other root is returned unchanged as a single-element
// slice, since sampled scans already select a bounded row set and
// splitting them further wouldn't reduce wall-clock work.
func Split(root Node, degree int) []Node {
	if degree <= 1 {
		return []Node{root}
	}

	scan, chainAbove := findScan(root)
	var lo, hi int64
	switch s := scan.(type) {
	case *FullEntityScan:
		lo, hi = 0, s.RowCount
	case *RangedEntityScan:
		lo, hi = s.Start, s.End
	default:
		return []Node{root}
	}

	total := hi - lo
	if total <= 0 {
		return []Node{root}
	}
	chunk := (total + int64(degree) - 1) / int64(degree)

	var out []Node
	for start := lo; start < hi; start += chunk {
		end := start + chunk
		if end > hi {
			end = hi
		}
		sub := NewRangedEntityScan(scan.Entity(), start, end)
		out = append(out, rebuildChain(chainAbove, sub))
	}
	return out
}

// findScan walks down to the root scan node, recording the chain of
// operators above it so rebuildChain can re-attach them to a new scan.
func findScan(n Node) (Node, []func(Node) Node) {
	var chain []func(Node) Node
	cur := n
	for cur.Input() != nil {
		chain = append(chain, rebuilder(cur))
		cur = cur.Input()
	}
	// reverse so chain[0] is the operator directly above the scan
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return cur, chain
}

// rebuilder captures n's operator-specific fields into a closure that
// reconstructs an equivalent node over a new input.
func rebuilder(n Node) func(Node) Node {
	switch t := n.(type) {
	case *FetchColumns:
		return func(in Node) Node { return NewFetchColumns(in, t.Columns) }
	case *FilterPredicate:
		return func(in Node) Node { return NewFilterPredicate(in, t.Predicate, t.Selectivity) }
	case *KnnPredicate:
		return func(in Node) Node { return NewKnnPredicate(in, t.Column, t.Queries, t.K, t.Kernel, t.Weights) }
	case *Projection:
		return func(in Node) Node { return NewProjection(in, t.ProjectionKind, t.Fields) }
	case *Limit:
		return func(in Node) Node { return NewLimit(in, t.N, t.Skip) }
	default:
		return func(in Node) Node { return in }
	}
}

func rebuildChain(chain []func(Node) Node, leaf Node) Node {
	cur := leaf
	for _, f := range chain {
		cur = f(cur)
	}
	return cur
}

// CombineKnnFilter reports whether a FilterPredicate immediately above a
// KnnPredicate should be pushed into a single combined scan task instead
// of two separate stages: worthwhile when the filter's estimated
// selectivity is low enough that evaluating it before the kNN heap
// admission saves more distance-kernel evaluations than the extra
// per-row predicate check costs.
//
// The threshold is a planning heuristic, not a spec-mandated constant;
// 0.3 follows the rule of thumb ByteDB's distributed planner uses for its
// own filter-pushdown decision (push when the filter is expected to drop
// more than ~70% of rows).
func CombineKnnFilter(filter *FilterPredicate, knn *KnnPredicate) bool {
	_, ok := filter.Input().(*KnnPredicate)
	if !ok || filter.Input() != Node(knn) {
		return false
	}
	return filter.Selectivity <= 0.3
}
