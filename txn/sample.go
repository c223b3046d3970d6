package txn

import (
	"context"

	"github.com/gabuzi/cottontaildb/internal/rng"
	"github.com/gabuzi/cottontaildb/record"
)

// ForEachSampled invokes action for up to size distinct, seed-reproducible
// tuple ids, spec.md §4.6's SampledEntityScan. Calling it twice with the
// same seed against an unchanged entity visits the same tuple ids in the
// same order, satisfying §8 invariant 8.
func (s *Scan) ForEachSampled(ctx context.Context, seed int64, size int, action func(record.Record) error) error {
	r := rng.New(seed)
	rowCount := s.entity.RowCount()
	indices := r.SampleIndices(int(rowCount), size)

	for _, rowID := range indices {
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
