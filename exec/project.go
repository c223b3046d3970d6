package exec

import (
	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/cterr"
	"github.com/gabuzi/cottontaildb/plan"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/value"
)

// applyProjection reduces or reshapes rs according to proj, spec.md
// §4.5's projection operators.
func applyProjection(rs *record.RecordSet, proj *plan.Projection) (*record.RecordSet, error) {
	switch proj.ProjectionKind {
	case plan.ProjectColumns:
		if len(proj.Fields) == 0 {
			return rs, nil
		}
		return rs.Project(proj.Fields...), nil

	case plan.ProjectDistinct:
		return rs.Distinct(), nil

	case plan.ProjectCount:
		return scalarResult("count", value.NewLong(rs.Count())), nil

	case plan.ProjectExists:
		return scalarResult("exists", value.NewBool(rs.Exists())), nil

	case plan.ProjectMin, plan.ProjectMax, plan.ProjectSum, plan.ProjectMean:
		return applyAggregate(rs, proj)

	default:
		return rs, nil
	}
}

func applyAggregate(rs *record.RecordSet, proj *plan.Projection) (*record.RecordSet, error) {
	if len(proj.Fields) != 1 {
		return nil, &cterr.BindError{Reference: "projection", Reason: "aggregate projection requires exactly one field"}
	}
	column := proj.Fields[0]

	switch proj.ProjectionKind {
	case plan.ProjectMin:
		v, err := rs.Min(column)
		if err != nil {
			return nil, &cterr.ExecutionError{Stage: "projection", Err: err}
		}
		return scalarResult("min", v), nil
	case plan.ProjectMax:
		v, err := rs.Max(column)
		if err != nil {
			return nil, &cterr.ExecutionError{Stage: "projection", Err: err}
		}
		return scalarResult("max", v), nil
	case plan.ProjectSum:
		f, err := rs.Sum(column)
		if err != nil {
			return nil, &cterr.ExecutionError{Stage: "projection", Err: err}
		}
		return scalarResult("sum", value.NewDouble(f)), nil
	case plan.ProjectMean:
		f, err := rs.Mean(column)
		if err != nil {
			return nil, &cterr.ExecutionError{Stage: "projection", Err: err}
		}
		return scalarResult("mean", value.NewDouble(f)), nil
	default:
		return rs, nil
	}
}

// scalarResult wraps a single aggregate value as a one-row, one-column
// RecordSet, so every projection kind returns the same shape downstream
// code (paging, the wire layer) can treat uniformly.
func scalarResult(name string, v value.Value) *record.RecordSet {
	out := record.New([]catalogue.ColumnDef{{Name: name, Kind: v.Kind(), Vector: v.IsVector(), LogicalSize: v.LogicalSize()}})
	out.Append(record.Record{TupleID: -1, Values: []value.Value{v}})
	return out
}
