package tokenstore

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "tokens.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func TestStore_SaveThenLoad(t *testing.T) {
	store := newTestStore(t, 23*time.Hour)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save("token-one"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-one", got)

	// re-login overwrites the slot
	require.NoError(t, store.Save("token-two"))
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-two", got)
}

func TestStore_ExpiredRecordIsClearedOnLoad(t *testing.T) {
	store := newTestStore(t, 23*time.Hour)

	require.NoError(t, store.Save("stale-token"))

	// move the clock past the local window
	store.now = func() time.Time { return time.Now().Add(23*time.Hour + time.Minute) }

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	// the record is gone, not merely hidden: restoring the clock must
	// not resurrect it
	store.now = time.Now
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestStore_LoadJustInsideWindow(t *testing.T) {
	store := newTestStore(t, 23*time.Hour)

	require.NoError(t, store.Save("fresh-token"))
	store.now = func() time.Time { return time.Now().Add(23*time.Hour - time.Minute) }

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", got)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t, time.Hour)

	require.NoError(t, store.Save("token"))
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	// clearing an empty store is fine
	require.NoError(t, store.Clear())
}

func TestStore_ConcurrentSaveAndClear(t *testing.T) {
	store := newTestStore(t, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Save("token")
		}()
		go func() {
			defer wg.Done()
			_ = store.Clear()
		}()
	}
	wg.Wait()

	// whichever operation won, the store is consistent: either a valid
	// token or a clean miss
	token, err := store.Load()
	if err == nil {
		assert.Equal(t, "token", token)
	} else {
		assert.ErrorIs(t, err, ErrNoToken)
	}
}
