package exec

import (
	"context"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/cterr"
	"github.com/gabuzi/cottontaildb/plan"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/txn"
)

// scanTask scans [start,end) of an entity, fetching columns and applying
// an optional boolean predicate, following spec.md §4.7's "combined
// scan-with-filter" lowering for the non-kNN case.
type scanTask struct {
	entity  *txn.Entity
	columns []catalogue.ColumnDef
	start   int64
	end     int64
	filter  plan.Predicate
}

func (t *scanTask) Run(ctx context.Context) (*record.RecordSet, error) {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}

	scan := txn.NewScan(t.entity, names)
	defer scan.Release()

	out := record.New(t.columns)
	var predErr error
	action := func(r record.Record) error {
		out.Append(r)
		return nil
	}

	var err error
	if t.filter == nil {
		err = scan.ForEachRange(ctx, t.start, t.end, action)
	} else {
		err = scan.ForEachRangedPredicate(ctx, t.start, t.end, func(r record.Record) bool {
			ok, evalErr := t.filter.Eval(r)
			if evalErr != nil {
				predErr = &cterr.ExecutionError{Stage: "filter", Err: evalErr}
				return false
			}
			return ok
		}, action)
	}
	if err != nil {
		return nil, err
	}
	if predErr != nil {
		return nil, predErr
	}
	return out, nil
}

// splitRanges partitions [0,total) into at most degree contiguous,
// non-empty ranges, following plan.Split's chunking rule.
func splitRanges(total int64, degree int) [][2]int64 {
	if degree <= 1 || total <= 0 {
		return [][2]int64{{0, total}}
	}
	chunk := (total + int64(degree) - 1) / int64(degree)
	var out [][2]int64
	for start := int64(0); start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}
		out = append(out, [2]int64{start, end})
	}
	return out
}
