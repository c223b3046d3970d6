// Package exec implements Cottontail's execution layer: lowering a bound
// logical plan into parallel scan/kNN tasks, running them with a bounded
// concurrency degree, and merging their outputs according to spec.md
// §4.8's ONE/ALL stage merge rules.
package exec

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gabuzi/cottontaildb/record"
)

// MergeRule is one of the two stage merge rules spec.md §4.8 names.
type MergeRule int

const (
	// MergeOne passes a single upstream's output through unchanged.
	MergeOne MergeRule = iota
	// MergeAll unions every upstream's output, order preserved per
	// upstream, upstreams concatenated in declaration order.
	MergeAll
)

// Task is one unit of execution within a stage: it produces a RecordSet
// or fails, and the whole plan fails with it (spec.md §4.8: "a task fails
// the whole plan").
type Task interface {
	Run(ctx context.Context) (*record.RecordSet, error)
}

// Stage is a group of tasks merged by Rule. The executor runs every
// stage's tasks concurrently (bounded by the caller's parallelism degree,
// reflected in how many tasks a Stage is given) and merges their results.
type Stage struct {
	Rule  MergeRule
	Tasks []Task
}

// Run executes every task in the stage — sequentially for MergeOne (which
// only ever holds one task), concurrently via errgroup for MergeAll — and
// merges their outputs. A MergeAll stage concatenates in declaration
// order: result[i] always holds task i's output regardless of completion
// order, satisfying spec.md §5's "per-range order is preserved" guarantee.
func (s *Stage) Run(ctx context.Context) (*record.RecordSet, error) {
	if len(s.Tasks) == 0 {
		return record.New(nil), nil
	}
	if s.Rule == MergeOne {
		if len(s.Tasks) != 1 {
			panic("exec: MergeOne stage must have exactly one task")
		}
		return s.Tasks[0].Run(ctx)
	}

	results := make([]*record.RecordSet, len(s.Tasks))
	g, gctx := errgroup.WithContext(ctx)
	for i, task := range s.Tasks {
		i, task := i, task
		g.Go(func() error {
			rs, err := task.Run(gctx)
			if err != nil {
				return err
			}
			results[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged *record.RecordSet
	for _, rs := range results {
		if rs == nil {
			continue
		}
		if merged == nil {
			merged = record.New(rs.Columns)
		}
		merged.Records = append(merged.Records, rs.Records...)
	}
	if merged == nil {
		merged = record.New(nil)
	}
	return merged, nil
}
