package kv

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"redis":  NewRedis(client),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, store.Set(ctx, "doc", []byte(`{"a":1}`)))
			got, err := store.Get(ctx, "doc")
			require.NoError(t, err)
			require.JSONEq(t, `{"a":1}`, string(got))

			require.NoError(t, store.Set(ctx, "doc", []byte(`{"a":2}`)))
			got, err = store.Get(ctx, "doc")
			require.NoError(t, err)
			require.JSONEq(t, `{"a":2}`, string(got))

			require.NoError(t, store.Delete(ctx, "doc"))
			_, err = store.Get(ctx, "doc")
			require.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestStoreIncrIsMonotonic(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			for want := int64(1); want <= 5; want++ {
				n, err := store.Incr(ctx, "seq")
				require.NoError(t, err)
				require.Equal(t, want, n)
			}
		})
	}
}
