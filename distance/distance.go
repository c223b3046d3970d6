// Package distance implements the similarity kernels a kNN predicate can
// evaluate: L1, L2, Lp, cosine, inner product, Hamming, and chi-squared,
// each stateless, concurrency-safe, and exposing a relative cost multiplier
// the planner folds into a KnnPredicate's cost triple.
//
// The kernel set is a registry of named Kernel values rather than a fixed
// switch statement, following the teacher's distance.Provider(name)
// lookup — the planner and binder both need to resolve a kernel by the name
// carried on the wire, not by a Go type switch.
package distance

import (
	"fmt"
	"math"

	"github.com/gabuzi/cottontaildb/value"
)

// Kernel evaluates the distance between two vectors, optionally weighted.
// Eval returns an error if a and b are not comparable vectors (mismatched
// length, non-numeric kind).
type Kernel struct {
	// Name is the kernel's wire/catalogue identifier, e.g. "L2", "COSINE".
	Name string
	// Cost is the kernel's relative evaluation cost multiplier, used by the
	// planner's cost model; L1 is the baseline (1.0).
	Cost float64
	Eval func(a, b, weights value.Value) (float64, error)
}

// Registry resolves kernels by name.
type Registry struct {
	kernels map[string]Kernel
}

// NewRegistry returns a Registry pre-populated with every kernel this
// package implements.
func NewRegistry() *Registry {
	r := &Registry{kernels: make(map[string]Kernel, 7)}
	for _, k := range []Kernel{l1Kernel(), l2Kernel(), lpKernel(3), cosineKernel(), innerProductKernel(), hammingKernel(), chiSquaredKernel()} {
		r.kernels[k.Name] = k
	}
	return r
}

// Register adds or replaces a kernel under its own Name, letting callers
// install an Lp kernel for a specific p (Lp's default registration uses
// p=3; NewLp builds an Lp kernel for any other p).
func (r *Registry) Register(k Kernel) { r.kernels[k.Name] = k }

// Lookup resolves a kernel by name.
func (r *Registry) Lookup(name string) (Kernel, error) {
	k, ok := r.kernels[name]
	if !ok {
		return Kernel{}, fmt.Errorf("distance: unknown kernel %q", name)
	}
	return k, nil
}

func checkVectors(a, b value.Value) ([]float64, []float64, error) {
	if !a.IsVector() || !b.IsVector() {
		return nil, nil, fmt.Errorf("distance: operands must be vectors")
	}
	if a.LogicalSize() != b.LogicalSize() {
		return nil, nil, fmt.Errorf("distance: dimension mismatch %d != %d", a.LogicalSize(), b.LogicalSize())
	}
	for _, v := range []value.Value{a, b} {
		switch v.Kind() {
		case value.Byte, value.Short, value.Int, value.Long, value.Float, value.Double:
		default:
			return nil, nil, fmt.Errorf("distance: unsupported vector kind %s", v.Kind())
		}
	}
	return a.AsDoubleVector(), b.AsDoubleVector(), nil
}

func weightsOrOnes(w value.Value, n int) []float64 {
	if w.IsNull() {
		ones := make([]float64, n)
		for i := range ones {
			ones[i] = 1
		}
		return ones
	}
	return w.AsDoubleVector()
}

func l1Kernel() Kernel {
	return Kernel{Name: "L1", Cost: 1.0, Eval: func(a, b, weights value.Value) (float64, error) {
		da, db, err := checkVectors(a, b)
		if err != nil {
			return 0, err
		}
		w := weightsOrOnes(weights, len(da))
		var sum float64
		for i := range da {
			sum += w[i] * math.Abs(da[i]-db[i])
		}
		return sum, nil
	}}
}

func l2Kernel() Kernel {
	return Kernel{Name: "L2", Cost: 1.2, Eval: func(a, b, weights value.Value) (float64, error) {
		da, db, err := checkVectors(a, b)
		if err != nil {
			return 0, err
		}
		w := weightsOrOnes(weights, len(da))
		var sum float64
		for i := range da {
			diff := da[i] - db[i]
			sum += w[i] * diff * diff
		}
		return math.Sqrt(sum), nil
	}}
}

// lpKernel returns a generic Minkowski-distance kernel for exponent p. Its
// cost multiplier grows with p to reflect the extra math.Pow calls relative
// to L1/L2's specialised arithmetic.
func lpKernel(p float64) Kernel {
	return Kernel{Name: "LP", Cost: 1.5 + 0.1*p, Eval: func(a, b, weights value.Value) (float64, error) {
		da, db, err := checkVectors(a, b)
		if err != nil {
			return 0, err
		}
		w := weightsOrOnes(weights, len(da))
		var sum float64
		for i := range da {
			sum += w[i] * math.Pow(math.Abs(da[i]-db[i]), p)
		}
		return math.Pow(sum, 1/p), nil
	}}
}

// NewLp constructs an Lp kernel for an arbitrary exponent, for planner/
// binder call sites that need a p the shared registry doesn't carry.
func NewLp(p float64) Kernel { return lpKernel(p) }

func cosineKernel() Kernel {
	return Kernel{Name: "COSINE", Cost: 1.3, Eval: func(a, b, _ value.Value) (float64, error) {
		da, db, err := checkVectors(a, b)
		if err != nil {
			return 0, err
		}
		var dot, na, nb float64
		for i := range da {
			dot += da[i] * db[i]
			na += da[i] * da[i]
			nb += db[i] * db[i]
		}
		if na == 0 || nb == 0 {
			return 1, nil // maximally dissimilar, avoids division by zero
		}
		return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb)), nil
	}}
}

func innerProductKernel() Kernel {
	return Kernel{Name: "INNERPRODUCT", Cost: 1.0, Eval: func(a, b, _ value.Value) (float64, error) {
		da, db, err := checkVectors(a, b)
		if err != nil {
			return 0, err
		}
		var dot float64
		for i := range da {
			dot += da[i] * db[i]
		}
		return -dot, nil // negated so that "smaller is closer" still holds
	}}
}

func hammingKernel() Kernel {
	return Kernel{Name: "HAMMING", Cost: 0.8, Eval: func(a, b, _ value.Value) (float64, error) {
		da, db, err := checkVectors(a, b)
		if err != nil {
			return 0, err
		}
		var diff float64
		for i := range da {
			if da[i] != db[i] {
				diff++
			}
		}
		return diff, nil
	}}
}

func chiSquaredKernel() Kernel {
	return Kernel{Name: "CHISQUARED", Cost: 1.6, Eval: func(a, b, weights value.Value) (float64, error) {
		da, db, err := checkVectors(a, b)
		if err != nil {
			return 0, err
		}
		w := weightsOrOnes(weights, len(da))
		var sum float64
		for i := range da {
			denom := da[i] + db[i]
			if denom == 0 {
				continue
			}
			diff := da[i] - db[i]
			sum += w[i] * (diff * diff) / denom
		}
		return sum, nil
	}}
}
