package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumed/spectra-console/internal/upstream"
)

func TestRun_EmptyChainProceeds(t *testing.T) {
	t.Parallel()

	nav := &Navigation{To: Route{Path: "/login"}}

	decision, err := Run(context.Background(), nav, nil)
	require.NoError(t, err)
	require.Nil(t, decision)
}

func TestRun_FirstDecisionShortCircuits(t *testing.T) {
	t.Parallel()

	var calls []string

	first := func(_ context.Context, _ *Navigation) (*Decision, error) {
		calls = append(calls, "first")
		return Redirect("/login"), nil
	}
	second := func(_ context.Context, _ *Navigation) (*Decision, error) {
		calls = append(calls, "second")
		return nil, nil
	}

	decision, err := Run(context.Background(), &Navigation{To: Route{Path: "/patients"}}, []Middleware{first, second})
	require.NoError(t, err)
	require.NotNil(t, decision)
	require.Equal(t, "/login", decision.RedirectTo)
	// Решение первого обрывает цепочку: второй не вызывается.
	require.Equal(t, []string{"first"}, calls)
}

func TestRun_PassThroughCallsAllInOrder(t *testing.T) {
	t.Parallel()

	var calls []string

	mw := func(name string) Middleware {
		return func(_ context.Context, _ *Navigation) (*Decision, error) {
			calls = append(calls, name)
			return nil, nil
		}
	}

	decision, err := Run(context.Background(), &Navigation{}, []Middleware{mw("a"), mw("b"), mw("c")})
	require.NoError(t, err)
	require.Nil(t, decision)
	require.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestRun_ErrorAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	failing := func(_ context.Context, _ *Navigation) (*Decision, error) {
		return nil, boom
	}
	never := func(_ context.Context, _ *Navigation) (*Decision, error) {
		t.Fatal("must not be called after error")
		return nil, nil
	}

	decision, err := Run(context.Background(), &Navigation{}, []Middleware{failing, never})
	require.ErrorIs(t, err, boom)
	require.Nil(t, decision)
}

// staticAuth — Authenticator с фиксированным ответом.
type staticAuth bool

func (a staticAuth) IsAuthenticated(context.Context, string) bool { return bool(a) }

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	ctx := upstream.WithSID(context.Background(), "sid-1")
	nav := &Navigation{To: Route{Path: "/patients"}}

	t.Run("authenticated_proceeds", func(t *testing.T) {
		t.Parallel()

		decision, err := Run(ctx, nav, []Middleware{RequireAuth(staticAuth(true), "/login")})
		require.NoError(t, err)
		require.Nil(t, decision)
	})

	t.Run("anonymous_redirected_to_login", func(t *testing.T) {
		t.Parallel()

		decision, err := Run(ctx, nav, []Middleware{RequireAuth(staticAuth(false), "/login")})
		require.NoError(t, err)
		require.NotNil(t, decision)
		require.Equal(t, "/login", decision.RedirectTo)
	})
}
