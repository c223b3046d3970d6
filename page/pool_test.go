package page

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireWriteReleaseFlushPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "col.ctl")

	bp, err := Open(path, DefaultSize, 4, nil, CompressionNone)
	require.NoError(t, err)

	ctx := context.Background()
	b, err := bp.Acquire(ctx, 0, ModeWrite)
	require.NoError(t, err)

	require.NoError(t, b.Page().PutLong(0, 42))
	require.NoError(t, bp.Flush(b.Page()))
	b.Release()
	require.NoError(t, bp.Close())

	bp2, err := Open(path, DefaultSize, 4, nil, CompressionNone)
	require.NoError(t, err)
	defer bp2.Close()

	b2, err := bp2.Acquire(ctx, 0, ModeRead)
	require.NoError(t, err)
	defer b2.Release()

	v, err := b2.Page().GetLong(0)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestEvictionSkipsPinnedFrames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "col.ctl")

	bp, err := Open(path, DefaultSize, 1, nil, CompressionNone)
	require.NoError(t, err)
	defer bp.Close()

	ctx := context.Background()
	pinned, err := bp.Acquire(ctx, 0, ModeRead)
	require.NoError(t, err)

	_, err = bp.Acquire(ctx, 1, ModeRead)
	assert.Error(t, err) // capacity 1, frame 0 is pinned, nothing to evict

	pinned.Release()
}
