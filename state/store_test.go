package state

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := OpenBoltStore(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// forEachStore runs fn against both Store implementations.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("mem", func(t *testing.T) { fn(t, NewMemStore()) })
	t.Run("bolt", func(t *testing.T) { fn(t, tempBoltStore(t)) })
}

var errBoom = errors.New("boom")

func TestStore_PutGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Update(func(tx Tx) error {
			return tx.Put([]byte("b"), []byte("k"), []byte("v"))
		}))

		require.NoError(t, s.View(func(tx Tx) error {
			assert.Equal(t, []byte("v"), tx.Get([]byte("b"), []byte("k")))
			assert.Nil(t, tx.Get([]byte("b"), []byte("missing")))
			assert.Nil(t, tx.Get([]byte("nobucket"), []byte("k")))
			return nil
		}))
	})
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Update(func(tx Tx) error {
			return tx.Put([]byte("b"), []byte("count"), []byte{1})
		}))

		err := s.Update(func(tx Tx) error {
			require.NoError(t, tx.Put([]byte("b"), []byte("count"), []byte{2}))
			require.NoError(t, tx.Put([]byte("b"), []byte("other"), []byte{3}))
			// Writes are visible inside the transaction.
			assert.Equal(t, []byte{2}, tx.Get([]byte("b"), []byte("count")))
			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)

		require.NoError(t, s.View(func(tx Tx) error {
			assert.Equal(t, []byte{1}, tx.Get([]byte("b"), []byte("count")))
			assert.Nil(t, tx.Get([]byte("b"), []byte("other")))
			return nil
		}))
	})
}

func TestStore_Delete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Update(func(tx Tx) error {
			return tx.Put([]byte("b"), []byte("k"), []byte("v"))
		}))
		require.NoError(t, s.Update(func(tx Tx) error {
			require.NoError(t, tx.Delete([]byte("b"), []byte("k")))
			assert.Nil(t, tx.Get([]byte("b"), []byte("k")))
			return tx.Delete([]byte("nobucket"), []byte("k"))
		}))
		require.NoError(t, s.View(func(tx Tx) error {
			assert.Nil(t, tx.Get([]byte("b"), []byte("k")))
			return nil
		}))
	})
}

func TestStore_ViewIsReadOnly(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		err := s.View(func(tx Tx) error {
			return tx.Put([]byte("b"), []byte("k"), []byte("v"))
		})
		assert.ErrorIs(t, err, ErrReadOnly)
	})
}

func TestStore_EmptyKey(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		err := s.Update(func(tx Tx) error {
			return tx.Put([]byte("b"), nil, []byte("v"))
		})
		assert.ErrorIs(t, err, ErrEmptyKey)
	})
}

func TestStore_Scan(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Update(func(tx Tx) error {
			for _, k := range []string{"a/2", "a/1", "a/10", "b/1", "a/3"} {
				if err := tx.Put([]byte("b"), []byte(k), []byte(k)); err != nil {
					return err
				}
			}
			return nil
		}))

		collect := func(prefix, after string, limit int) []string {
			var keys []string
			var start []byte
			if after != "" {
				start = []byte(after)
			}
			require.NoError(t, s.View(func(tx Tx) error {
				return tx.Scan([]byte("b"), []byte(prefix), start, func(k, v []byte) bool {
					assert.Equal(t, k, v)
					keys = append(keys, string(k))
					return len(keys) < limit
				})
			}))
			return keys
		}

		assert.Equal(t, []string{"a/1", "a/10", "a/2", "a/3"}, collect("a/", "", 100))
		assert.Equal(t, []string{"a/10", "a/2"}, collect("a/", "a/1", 2))
		assert.Equal(t, []string{"a/3"}, collect("a/", "a/2", 100))
		assert.Empty(t, collect("a/", "a/3", 100))
		assert.Equal(t, []string{"a/1", "a/10", "a/2", "a/3", "b/1"}, collect("", "", 100))
		assert.Empty(t, collect("c/", "", 100))
	})
}

func TestMemStore_ScanSeesStagedWrites(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Update(func(tx Tx) error {
		return tx.Put([]byte("b"), []byte("1"), []byte("x"))
	}))
	require.NoError(t, s.Update(func(tx Tx) error {
		require.NoError(t, tx.Put([]byte("b"), []byte("2"), []byte("y")))
		require.NoError(t, tx.Delete([]byte("b"), []byte("1")))

		var keys []string
		require.NoError(t, tx.Scan([]byte("b"), nil, nil, func(k, _ []byte) bool {
			keys = append(keys, string(k))
			return true
		}))
		assert.Equal(t, []string{"2"}, keys)
		return nil
	}))
}

func TestStore_Closed(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.View(func(Tx) error { return nil }), ErrClosed)
	assert.ErrorIs(t, s.Update(func(Tx) error { return nil }), ErrClosed)
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Update(func(tx Tx) error {
		return tx.Put([]byte("b"), []byte("k"), []byte("durable"))
	}))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
	require.NoError(t, s.View(func(tx Tx) error {
		assert.Equal(t, []byte("durable"), tx.Get([]byte("b"), []byte("k")))
		return nil
	}))
}
