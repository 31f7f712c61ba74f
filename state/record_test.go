package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Name  string
	Count uint64
	Note  *string
}

func TestItem_LoadSave(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		item := NewItem[uint64]("meta", "counter")

		require.NoError(t, s.View(func(tx Tx) error {
			assert.False(t, item.Exists(tx))
			_, err := item.Load(tx)
			assert.ErrorIs(t, err, ErrNotFound)
			return nil
		}))

		require.NoError(t, s.Update(func(tx Tx) error { return item.Save(tx, 0) }))
		require.NoError(t, s.Update(func(tx Tx) error {
			n, err := item.Load(tx)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), n)
			return item.Save(tx, n+7)
		}))

		require.NoError(t, s.View(func(tx Tx) error {
			assert.True(t, item.Exists(tx))
			n, err := item.Load(tx)
			require.NoError(t, err)
			assert.Equal(t, uint64(7), n)
			return nil
		}))
	})
}

func TestItem_DecodeError(t *testing.T) {
	s := NewMemStore()
	item := NewItem[testRecord]("meta", "rec")
	require.NoError(t, s.Update(func(tx Tx) error {
		return tx.Put([]byte("meta"), []byte("rec"), []byte("not a gob stream"))
	}))
	require.NoError(t, s.View(func(tx Tx) error {
		_, err := item.Load(tx)
		assert.ErrorIs(t, err, ErrDecode)
		return nil
	}))
}

func TestMap_CRUDAndRange(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		m := NewMap[testRecord]("records")
		note := "hello"

		require.NoError(t, s.Update(func(tx Tx) error {
			require.NoError(t, m.Save(tx, "x/1", testRecord{Name: "one", Count: 1, Note: &note}))
			require.NoError(t, m.Save(tx, "x/2", testRecord{Name: "two", Count: 2}))
			return m.Save(tx, "y/1", testRecord{Name: "other"})
		}))

		require.NoError(t, s.View(func(tx Tx) error {
			got, err := m.Load(tx, "x/1")
			require.NoError(t, err)
			assert.Equal(t, "one", got.Name)
			require.NotNil(t, got.Note)
			assert.Equal(t, "hello", *got.Note)

			assert.True(t, m.Has(tx, "x/2"))
			assert.False(t, m.Has(tx, "x/3"))

			var names []string
			require.NoError(t, m.Range(tx, "x/", "", func(_ string, r testRecord) bool {
				names = append(names, r.Name)
				return true
			}))
			assert.Equal(t, []string{"one", "two"}, names)

			names = nil
			require.NoError(t, m.Range(tx, "x/", "x/1", func(_ string, r testRecord) bool {
				names = append(names, r.Name)
				return true
			}))
			assert.Equal(t, []string{"two"}, names)
			return nil
		}))

		require.NoError(t, s.Update(func(tx Tx) error { return m.Remove(tx, "x/1") }))
		require.NoError(t, s.View(func(tx Tx) error {
			_, err := m.Load(tx, "x/1")
			assert.ErrorIs(t, err, ErrNotFound)
			return nil
		}))
	})
}
