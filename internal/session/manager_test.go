package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/lumed/spectra-console/internal/models"
	"github.com/lumed/spectra-console/internal/tokens"
	"github.com/lumed/spectra-console/internal/upstream"
)

// mintToken выпускает подписанный JWT с заданным exp; подпись менеджер
// не проверяет, секрет здесь произвольный.
func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

// authUpstream — фальшивая платформа: счётчики вызовов и настраиваемые ответы.
type authUpstream struct {
	srv *httptest.Server

	loginHits   int32
	refreshHits int32
	logoutHits  int32
	whoamiHits  int32

	refreshStatus int32 // ответ /refresh; по умолчанию 200
	refreshDelay  time.Duration

	accessToken  string
	refreshToken string

	mu sync.Mutex
}

func newAuthUpstream(t *testing.T) *authUpstream {
	t.Helper()

	u := &authUpstream{
		accessToken:   mintToken(t, time.Now().Add(time.Hour)),
		refreshToken:  "refresh-1",
		refreshStatus: http.StatusOK,
	}

	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			atomic.AddInt32(&u.loginHits, 1)

			var creds models.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "valid" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
				return
			}

			u.mu.Lock()
			resp := models.TokenPairResponse{AccessToken: u.accessToken, RefreshToken: u.refreshToken}
			u.mu.Unlock()
			_ = json.NewEncoder(w).Encode(resp)

		case "/api/v1/auth/refresh":
			atomic.AddInt32(&u.refreshHits, 1)
			if u.refreshDelay > 0 {
				time.Sleep(u.refreshDelay)
			}

			if st := atomic.LoadInt32(&u.refreshStatus); st != http.StatusOK {
				w.WriteHeader(int(st))
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "refresh token revoked"})
				return
			}

			u.mu.Lock()
			resp := models.TokenPairResponse{AccessToken: u.accessToken, RefreshToken: u.refreshToken}
			u.mu.Unlock()
			_ = json.NewEncoder(w).Encode(resp)

		case "/api/v1/auth/logout":
			atomic.AddInt32(&u.logoutHits, 1)
			w.WriteHeader(http.StatusOK)

		case "/api/v1/auth/whoami":
			atomic.AddInt32(&u.whoamiHits, 1)
			_ = json.NewEncoder(w).Encode(models.User{ID: "u1", Email: "doctor@clinic.example"})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	t.Cleanup(u.srv.Close)

	return u
}

func newTestManager(t *testing.T, u *authUpstream) (*Manager, tokens.Store) {
	t.Helper()

	store := tokens.NewMemoryStore()

	tr, err := upstream.New(u.srv.URL, 5*time.Second, store)
	require.NoError(t, err)

	mgr := NewManager(upstream.NewAuthClient(tr), store)
	tr.SetRefresher(mgr)

	return mgr, store
}

func TestLogin_StoresTokenPair(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, store := newTestManager(t, u)

	fault, err := mgr.Login(context.Background(), "sid-1", models.LoginRequest{Email: "d@c.example", Password: "valid"})
	require.NoError(t, err)
	require.Nil(t, fault)

	pair, err := store.Pair(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Equal(t, u.accessToken, pair.Access)
	require.Equal(t, "refresh-1", pair.Refresh)
}

func TestLogin_RejectedPassesFault(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, store := newTestManager(t, u)

	fault, err := mgr.Login(context.Background(), "sid-1", models.LoginRequest{Email: "d@c.example", Password: "wrong"})
	require.NoError(t, err)
	require.NotNil(t, fault)
	require.Equal(t, http.StatusUnauthorized, fault.Status)
	require.Equal(t, "bad credentials", fault.Message)

	pair, err := store.Pair(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Empty(t, pair.Access)
	require.Empty(t, pair.Refresh)
}

func TestIsAuthenticated(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := base.Add(10 * time.Minute)

	tests := []struct {
		name   string
		access string
		now    time.Time
		want   bool
	}{
		{name: "no_tokens", access: "", now: base, want: false},
		{name: "valid_before_expiry", now: base, want: true},
		{name: "one_second_before_expiry", now: exp.Add(-time.Second), want: true},
		{name: "exactly_at_expiry", now: exp, want: false},
		{name: "after_expiry", now: exp.Add(time.Second), want: false},
		{name: "garbage_token", access: "not-a-jwt", now: base, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			u := newAuthUpstream(t)
			mgr, store := newTestManager(t, u)
			mgr.SetClock(func() time.Time { return tc.now })

			access := tc.access
			if access == "" && tc.name != "no_tokens" {
				access = mintToken(t, exp)
			}
			if access != "" {
				require.NoError(t, store.SavePair(context.Background(), "sid-1", tokens.Pair{Access: access, Refresh: "r"}))
			}

			require.Equal(t, tc.want, mgr.IsAuthenticated(context.Background(), "sid-1"))
		})
	}
}

func TestRefresh_UpdatesAccessToken(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, store := newTestManager(t, u)

	require.NoError(t, store.SavePair(context.Background(), "sid-1", tokens.Pair{Access: "stale", Refresh: "refresh-1"}))

	fresh := mintToken(t, time.Now().Add(2*time.Hour))
	u.mu.Lock()
	u.accessToken = fresh
	u.refreshToken = "refresh-2" // upstream ротирует refresh
	u.mu.Unlock()

	require.NoError(t, mgr.Refresh(context.Background(), "sid-1"))

	pair, err := store.Pair(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Equal(t, fresh, pair.Access)
	require.Equal(t, "refresh-2", pair.Refresh)
}

func TestRefresh_RejectedDestroysSession(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, store := newTestManager(t, u)

	require.NoError(t, store.SavePair(context.Background(), "sid-1", tokens.Pair{Access: "stale", Refresh: "revoked"}))
	atomic.StoreInt32(&u.refreshStatus, http.StatusUnauthorized)

	err := mgr.Refresh(context.Background(), "sid-1")
	require.ErrorIs(t, err, ErrRefreshRejected)

	pair, err := store.Pair(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Empty(t, pair.Access)
	require.Empty(t, pair.Refresh)
	require.False(t, mgr.IsAuthenticated(context.Background(), "sid-1"))
}

func TestRefresh_WithoutRefreshToken(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, _ := newTestManager(t, u)

	err := mgr.Refresh(context.Background(), "sid-unknown")
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.EqualValues(t, 0, atomic.LoadInt32(&u.refreshHits))
}

func TestRefresh_NetworkErrorKeepsTokens(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, store := newTestManager(t, u)

	require.NoError(t, store.SavePair(context.Background(), "sid-1", tokens.Pair{Access: "a", Refresh: "r"}))

	u.srv.Close() // платформа недоступна

	err := mgr.Refresh(context.Background(), "sid-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRefreshRejected)

	// Сетевой сбой не хоронит сессию.
	pair, perr := store.Pair(context.Background(), "sid-1")
	require.NoError(t, perr)
	require.Equal(t, "a", pair.Access)
	require.Equal(t, "r", pair.Refresh)
}

func TestRefresh_SingleFlight(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	u.refreshDelay = 200 * time.Millisecond
	mgr, store := newTestManager(t, u)

	require.NoError(t, store.SavePair(context.Background(), "sid-1", tokens.Pair{Access: "stale", Refresh: "refresh-1"}))

	const workers = 8

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = mgr.Refresh(context.Background(), "sid-1")
		}()
	}
	wg.Wait()

	// Конкурентные обновления одной сессии разделяют один вызов upstream.
	require.EqualValues(t, 1, atomic.LoadInt32(&u.refreshHits))
}

func TestLogout_RevokesAndClears(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, store := newTestManager(t, u)

	require.NoError(t, store.SavePair(context.Background(), "sid-1", tokens.Pair{Access: "a", Refresh: "r"}))

	require.NoError(t, mgr.Logout(context.Background(), "sid-1"))
	require.EqualValues(t, 1, atomic.LoadInt32(&u.logoutHits))

	pair, err := store.Pair(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Empty(t, pair.Access)
	require.Empty(t, pair.Refresh)
}

func TestLogout_ClearsTokensWhenUpstreamDown(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, store := newTestManager(t, u)

	require.NoError(t, store.SavePair(context.Background(), "sid-1", tokens.Pair{Access: "a", Refresh: "r"}))

	u.srv.Close()

	// Недоступная платформа не мешает выйти: ревокация best-effort.
	require.NoError(t, mgr.Logout(context.Background(), "sid-1"))

	pair, err := store.Pair(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Empty(t, pair.Access)
	require.Empty(t, pair.Refresh)
}

func TestCurrentUser_CachedPerSession(t *testing.T) {
	t.Parallel()

	u := newAuthUpstream(t)
	mgr, store := newTestManager(t, u)

	require.NoError(t, store.SavePair(context.Background(), "sid-1", tokens.Pair{Access: mintToken(t, time.Now().Add(time.Hour)), Refresh: "r"}))

	user, fault, err := mgr.CurrentUser(context.Background(), "sid-1")
	require.NoError(t, err)
	require.Nil(t, fault)
	require.Equal(t, "u1", user.ID)

	_, _, err = mgr.CurrentUser(context.Background(), "sid-1")
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&u.whoamiHits))

	// Logout сбрасывает кэш профиля — следующий вызов идёт на upstream.
	require.NoError(t, mgr.Logout(context.Background(), "sid-1"))

	_, _, err = mgr.CurrentUser(context.Background(), "sid-1")
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&u.whoamiHits))
}
