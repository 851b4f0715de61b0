package tokens

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_EmptySession(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()

	p, err := st.Pair(context.Background(), "no-such-sid")
	require.NoError(t, err)
	require.Empty(t, p.Access)
	require.Empty(t, p.Refresh)
}

func TestMemoryStore_SavePair_ThenRead(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.SavePair(ctx, "sid-1", Pair{Access: "a1", Refresh: "r1"}))

	p, err := st.Pair(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, "a1", p.Access)
	require.Equal(t, "r1", p.Refresh)
}

// Запись access не трогает refresh, и наоборот.
func TestMemoryStore_PartialWrites_KeepOtherHalf(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.SavePair(ctx, "sid-1", Pair{Access: "a1", Refresh: "r1"}))
	require.NoError(t, st.SaveAccess(ctx, "sid-1", "a2"))

	p, err := st.Pair(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, "a2", p.Access)
	require.Equal(t, "r1", p.Refresh)

	require.NoError(t, st.SaveRefresh(ctx, "sid-1", "r2"))

	p, err = st.Pair(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, "a2", p.Access)
	require.Equal(t, "r2", p.Refresh)
}

func TestMemoryStore_Destroy(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.SavePair(ctx, "sid-1", Pair{Access: "a1", Refresh: "r1"}))
	require.NoError(t, st.Destroy(ctx, "sid-1"))

	p, err := st.Pair(ctx, "sid-1")
	require.NoError(t, err)
	require.Empty(t, p.Access)
	require.Empty(t, p.Refresh)

	// Повторный Destroy несуществующей сессии — не ошибка.
	require.NoError(t, st.Destroy(ctx, "sid-1"))
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.SavePair(ctx, "sid-1", Pair{Access: "a1", Refresh: "r1"}))
	require.NoError(t, st.SavePair(ctx, "sid-2", Pair{Access: "a2", Refresh: "r2"}))
	require.NoError(t, st.Destroy(ctx, "sid-1"))

	p, err := st.Pair(ctx, "sid-2")
	require.NoError(t, err)
	require.Equal(t, "a2", p.Access)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.SaveAccess(ctx, "sid", "tok")
			_, _ = st.Pair(ctx, "sid")
		}()
	}
	wg.Wait()

	p, err := st.Pair(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, "tok", p.Access)
}
