package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabuzi/cottontaildb/value"
)

func TestL1AndL2(t *testing.T) {
	a := value.NewDoubleVector([]float64{0, 0})
	b := value.NewDoubleVector([]float64{3, 4})

	r := NewRegistry()

	l1, err := r.kernels["L1"].Eval(a, b, value.Null())
	assert.NoError(t, err)
	assert.Equal(t, 7.0, l1)

	l2, err := r.kernels["L2"].Eval(a, b, value.Null())
	assert.NoError(t, err)
	assert.InDelta(t, 5.0, l2, 1e-9)
}

func TestCosineIdenticalVectors(t *testing.T) {
	r := NewRegistry()
	v := value.NewDoubleVector([]float64{1, 2, 3})
	k, err := r.Lookup("COSINE")
	assert.NoError(t, err)

	d, err := k.Eval(v, v, value.Null())
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, d, 1e-9)
}

func TestHammingCountsMismatches(t *testing.T) {
	r := NewRegistry()
	a := value.NewDoubleVector([]float64{1, 0, 1, 1})
	b := value.NewDoubleVector([]float64{1, 1, 0, 1})
	k, _ := r.Lookup("HAMMING")

	d, err := k.Eval(a, b, value.Null())
	assert.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestWeightedL1(t *testing.T) {
	r := NewRegistry()
	a := value.NewDoubleVector([]float64{0, 0})
	b := value.NewDoubleVector([]float64{1, 1})
	weights := value.NewDoubleVector([]float64{2, 0.5})

	k, _ := r.Lookup("L1")
	d, err := k.Eval(a, b, weights)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, d)
}

func TestDimensionMismatchErrors(t *testing.T) {
	r := NewRegistry()
	a := value.NewDoubleVector([]float64{1, 2})
	b := value.NewDoubleVector([]float64{1, 2, 3})
	k, _ := r.Lookup("L2")

	_, err := k.Eval(a, b, value.Null())
	assert.Error(t, err)
}

func TestUnknownKernel(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("NOPE")
	assert.Error(t, err)
}
