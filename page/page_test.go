package page

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabuzi/cottontaildb/cterr"
)

func TestPutGetRoundTrip(t *testing.T) {
	p := New(0, DefaultSize)

	assert.NoError(t, p.PutLong(0, 123456789))
	v, err := p.GetLong(0)
	assert.NoError(t, err)
	assert.Equal(t, int64(123456789), v)

	assert.NoError(t, p.PutDouble(8, 3.14159))
	d, err := p.GetDouble(8)
	assert.NoError(t, err)
	assert.InDelta(t, 3.14159, d, 1e-9)

	assert.NoError(t, p.PutBytes(16, []byte("hello")))
	b, err := p.GetBytes(16, 5)
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	assert.True(t, p.Dirty())
}

func TestOverflowReturnsBoundsError(t *testing.T) {
	p := New(0, 16)
	_, err := p.GetLong(12) // needs bytes [12,20), page is only 16 bytes

	var be *cterr.BoundsError
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, cterr.Overflow, be.Variant)
}

func TestNegativeOffsetReturnsOutOfRange(t *testing.T) {
	p := New(0, 16)
	_, err := p.GetInt(-1)

	var be *cterr.BoundsError
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, cterr.OutOfRange, be.Variant)
}
