package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbSetup struct {
	name   string
	create func(t *testing.T) Store
}

func testStores(t *testing.T) []dbSetup {
	return []dbSetup{
		{"MemoryStore", func(t *testing.T) Store {
			return NewMemoryStore()
		}},
		{"BoltDBStore", func(t *testing.T) Store {
			s, err := NewBoltDBStore(BoltDBOptions{
				FilePath: filepath.Join(t.TempDir(), "test.db"),
			})
			require.NoError(t, err)
			return s
		}},
	}
}

func TestPutGetDelete(t *testing.T) {
	for _, setup := range testStores(t) {
		t.Run(setup.name, func(t *testing.T) {
			s := setup.create(t)
			t.Cleanup(func() { _ = s.Close() })

			key := []byte("foo")
			value := []byte("bar")

			_, err := s.Get(key)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, s.Put(key, value))
			got, err := s.Get(key)
			require.NoError(t, err)
			assert.Equal(t, value, got)

			// Overwrite.
			require.NoError(t, s.Put(key, []byte("baz")))
			got, err = s.Get(key)
			require.NoError(t, err)
			assert.Equal(t, []byte("baz"), got)

			require.NoError(t, s.Delete(key))
			_, err = s.Get(key)
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestSeek(t *testing.T) {
	for _, setup := range testStores(t) {
		t.Run(setup.name, func(t *testing.T) {
			s := setup.create(t)
			t.Cleanup(func() { _ = s.Close() })

			require.NoError(t, s.Put([]byte{0x70, 1}, []byte("a")))
			require.NoError(t, s.Put([]byte{0x70, 2}, []byte("b")))
			require.NoError(t, s.Put([]byte{0x70, 3}, []byte("c")))
			require.NoError(t, s.Put([]byte{0x71, 1}, []byte("other")))

			var got []string
			s.Seek([]byte{0x70}, func(k, v []byte) bool {
				got = append(got, string(v))
				return true
			})
			assert.Equal(t, []string{"a", "b", "c"}, got)

			// Early exit.
			got = got[:0]
			s.Seek([]byte{0x70}, func(k, v []byte) bool {
				got = append(got, string(v))
				return false
			})
			assert.Equal(t, []string{"a"}, got)
		})
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(DBConfiguration{Type: "inmemory"})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)
	require.NoError(t, s.Close())

	s, err = NewStore(DBConfiguration{
		Type: "boltdb",
		BoltDBOptions: BoltDBOptions{
			FilePath: filepath.Join(t.TempDir(), "ledger.db"),
		},
	})
	require.NoError(t, err)
	require.IsType(t, &BoltDBStore{}, s)
	require.NoError(t, s.Close())

	_, err = NewStore(DBConfiguration{Type: "redis"})
	require.Error(t, err)
}

func TestBoltDBReopen(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ledger.db")
	s, err := NewBoltDBStore(BoltDBOptions{FilePath: p})
	require.NoError(t, err)
	require.NoError(t, s.Put([]byte("key"), []byte("value")))
	require.NoError(t, s.Close())

	s, err = NewBoltDBStore(BoltDBOptions{FilePath: p})
	require.NoError(t, err)
	got, err := s.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
	require.NoError(t, s.Close())
}

func TestAppendPrefix(t *testing.T) {
	key := AppendPrefix(STBalance, []byte{1, 2}, []byte{3})
	assert.Equal(t, []byte{0x70, 1, 2, 3}, key)
	assert.Equal(t, []byte{0x71}, STSupply.Bytes())
}
