package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogicalAndStorageSize(t *testing.T) {
	v := NewFloatVector([]float32{1, 2, 3, 4})
	assert.Equal(t, 4, v.LogicalSize())
	assert.Equal(t, 16, v.StorageSize())

	cv := NewComplex64Vector([]complex128{1 + 2i, 3 + 4i})
	assert.Equal(t, 2, cv.LogicalSize())
	assert.Equal(t, 2*2*8, cv.StorageSize())
}

func TestPromoteWidensToHigherRank(t *testing.T) {
	a := NewInt(3)
	b := NewDouble(1.5)

	sum, err := Add(a, b)
	assert.NoError(t, err)
	assert.Equal(t, Double, sum.Kind())
	assert.InDelta(t, 4.5, sum.Double(), 1e-9)
}

func TestPromoteRejectsScalarVectorMix(t *testing.T) {
	a := NewInt(3)
	b := NewFloatVector([]float32{1, 2})
	_, err := Add(a, b)
	assert.Error(t, err)
}

func TestVectorArithmetic(t *testing.T) {
	a := NewFloatVector([]float32{1, 2, 3})
	b := NewDoubleVector([]float64{0.5, 0.5, 0.5})

	sum, err := Add(a, b)
	assert.NoError(t, err)
	assert.Equal(t, Double, sum.Kind())
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, sum.DoubleVector())
}

func TestNorm2AndDot(t *testing.T) {
	v := NewDoubleVector([]float64{3, 4})
	n, err := Norm2(v)
	assert.NoError(t, err)
	assert.InDelta(t, 5.0, n, 1e-9)

	d, err := Dot(v, v)
	assert.NoError(t, err)
	assert.InDelta(t, 25.0, d, 1e-9)
}
