package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	sqliteStore, err := NewSQLiteStore(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendFile:   fileStore,
		BackendSQLite: sqliteStore,
	}
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := st.Get(ctx, "movieRandomizer")
			require.NoError(t, err)
			require.False(t, ok, "fresh store should not contain key")

			require.NoError(t, st.Set(ctx, "movieRandomizer", []byte(`{"a":1}`)))
			got, ok, err := st.Get(ctx, "movieRandomizer")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, `{"a":1}`, string(got))

			require.NoError(t, st.Set(ctx, "movieRandomizer", []byte(`{"a":2}`)))
			got, _, err = st.Get(ctx, "movieRandomizer")
			require.NoError(t, err)
			require.Equal(t, `{"a":2}`, string(got), "Set should overwrite")

			require.NoError(t, st.Delete(ctx, "movieRandomizer"))
			_, ok, err = st.Get(ctx, "movieRandomizer")
			require.NoError(t, err)
			require.False(t, ok, "key should be gone after Delete")

			require.NoError(t, st.Delete(ctx, "movieRandomizer"), "deleting a missing key is not an error")
		})
	}
}

func TestStore_RejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := st.Set(ctx, "  ", []byte("x"))
			require.ErrorIs(t, err, ErrInvalidKey)
			_, _, err = st.Get(ctx, "")
			require.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, st.Set(ctx, "k", value))
	value[0] = 'z'

	got, _, err := st.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _, err := st.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(again))
}

func TestMemoryStore_Closed(t *testing.T) {
	st := NewMemoryStore()
	require.NoError(t, st.Close())
	_, _, err := st.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, st.Set(context.Background(), "k", nil), ErrClosed)
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape", `a\b`, ".hidden"} {
		err := st.Set(context.Background(), key, []byte("x"))
		require.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestFileStore_WritesJSONFileAndNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, st.Set(context.Background(), "movieRandomizer", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "movieRandomizer.json", entries[0].Name())
}

func TestFileStore_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	st, err := NewFileStore("~/marquee")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "marquee"), st.Dir())
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := NewSQLiteStore(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "k", []byte("v")))
	require.NoError(t, st.Close())

	reopened, err := NewSQLiteStore(ctx, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(got))
	require.Equal(t, filepath.Join(dir, sqliteFileName), reopened.Path())
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, Config{Backend: "", Path: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, st)

	st, err = Open(ctx, Config{Backend: " Memory "})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, st)

	st, err = Open(ctx, Config{Backend: BackendSQLite, Path: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, st)
	require.NoError(t, st.Close())

	_, err = Open(ctx, Config{Backend: "etcd"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported storage backend")
}

func TestRedisStore_PrefixesKeys(t *testing.T) {
	st := newRedisStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "marquee")
	t.Cleanup(func() { _ = st.Close() })
	require.Equal(t, "marquee:movieRandomizer", st.key("movieRandomizer"))

	require.Equal(t, "", normalizePrefix("  "))
	require.Equal(t, "app:", normalizePrefix("app:"))
}

func TestRedisStore_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "ping redis")

	st := newRedisStore(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	}), "")
	t.Cleanup(func() { _ = st.Close() })

	_, ok, err := st.Get(ctx, "k")
	require.Error(t, err)
	require.False(t, ok)
	require.False(t, errors.Is(err, redis.Nil))
}
