package adapters

import (
	"path/filepath"
	"testing"

	"github.com/Tap30/beacon-go/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorageAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.db")
	adapter, err := NewSQLiteStorageAdapter(path)
	require.NoError(t, err)

	loaded, err := adapter.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, adapter.Save(sampleMessages()))
	require.NoError(t, adapter.Close())

	reopened, err := NewSQLiteStorageAdapter(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err = reopened.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, payload.KindTrack, loaded[0].Type())
	assert.Equal(t, payload.KindIdentify, loaded[1].Type())
	assert.Equal(t, int64(1700000000000), loaded[0].Timestamp().UnixMilli())

	require.NoError(t, reopened.Save(sampleMessages()[:1]))
	loaded, err = reopened.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	require.NoError(t, reopened.Clear())
	loaded, err = reopened.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
