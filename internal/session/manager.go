// session — жизненный цикл аутентификации браузерной сессии консоли.
//
// Manager владеет парой токенов сессии (через tokens.Store), обменом
// учётных данных на токены, обновлением access-токена и выходом.
// Состояние «аутентифицирован» нигде не хранится отдельным флагом —
// оно вычисляется из exp-клейма текущего access-токена, поэтому
// рассинхронизация флага и токена невозможна.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/lumed/spectra-console/internal/models"
	"github.com/lumed/spectra-console/internal/tokens"
	"github.com/lumed/spectra-console/internal/upstream"
	logctx "github.com/lumed/spectra-console/pkg/log"
	"github.com/lumed/spectra-console/pkg/redact"
)

var (
	// ErrNotAuthenticated — у сессии нет refresh-токена, обновляться нечем.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrRefreshRejected — upstream отказал в обновлении; сессия завершена,
	// локальные токены уничтожены. Повторных попыток не бывает.
	ErrRefreshRejected = errors.New("refresh rejected")
)

// Manager — менеджер auth-сессий. Потокобезопасен; один экземпляр
// обслуживает все браузерные сессии консоли.
type Manager struct {
	auth  *upstream.AuthClient
	store tokens.Store

	// now подменяется в тестах для проверки границ срока действия.
	now func() time.Time

	// group гарантирует single-flight: конкурентные Refresh одной сессии
	// разделяют один вызов upstream вместо дублирования.
	group singleflight.Group

	mu       sync.RWMutex
	profiles map[string]models.User
}

// NewManager создаёт менеджер сессий.
func NewManager(auth *upstream.AuthClient, store tokens.Store) *Manager {
	return &Manager{
		auth:     auth,
		store:    store,
		now:      time.Now,
		profiles: make(map[string]models.User),
	}
}

// SetClock подменяет источник времени (нужен тестам на границы exp).
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

// Login обменивает учётные данные на пару токенов и сохраняет её.
// Возвращённый Fault содержит человекочитаемую причину отказа
// (сообщение upstream либо стандартный текст статуса).
func (m *Manager) Login(ctx context.Context, sid string, creds models.LoginRequest) (*upstream.Fault, error) {
	const op = "session.Manager.Login"

	lg := logctx.From(ctx)

	pair, fault, err := m.auth.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if fault != nil {
		lg.Warn("login_rejected",
			slog.String("op", op),
			slog.String("sid", redact.SID(sid)),
			slog.String("email", redact.Email(creds.Email)),
			slog.Int("status", fault.Status),
		)
		return fault, nil
	}

	if err := m.store.SavePair(ctx, sid, tokens.Pair{Access: pair.AccessToken, Refresh: pair.RefreshToken}); err != nil {
		return nil, fmt.Errorf("%s: save tokens: %w", op, err)
	}

	lg.Info("login_ok",
		slog.String("op", op),
		slog.String("sid", redact.SID(sid)),
		slog.String("email", redact.Email(creds.Email)),
	)

	return nil, nil
}

// IsAuthenticated сообщает, действителен ли access-токен сессии прямо сейчас.
// Никогда не возвращает ошибку: отсутствие токена, битый токен или токен
// без exp — это просто false. Подпись не проверяется — секрет принадлежит
// upstream, консоли достаточно срока действия.
func (m *Manager) IsAuthenticated(ctx context.Context, sid string) bool {
	pair, err := m.store.Pair(ctx, sid)
	if err != nil || pair.Access == "" {
		return false
	}

	exp, ok := accessExpiry(pair.Access)
	if !ok {
		return false
	}

	return m.now().Before(exp)
}

// Refresh обновляет access-токен по refresh-токену. Single-flight:
// конкурентные вызовы для одной сессии ждут общий результат.
// Отказ upstream терминален — сессия локально завершается.
func (m *Manager) Refresh(ctx context.Context, sid string) error {
	const op = "session.Manager.Refresh"

	_, err, _ := m.group.Do(sid, func() (any, error) {
		lg := logctx.From(ctx)

		pair, err := m.store.Pair(ctx, sid)
		if err != nil {
			return nil, fmt.Errorf("%s: token store: %w", op, err)
		}
		if pair.Refresh == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrNotAuthenticated)
		}

		fresh, fault, err := m.auth.Refresh(ctx, pair.Refresh)
		if err != nil {
			// Сетевой сбой: сессию не хороним, вызвавший решит сам.
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if fault != nil {
			lg.Warn("refresh_rejected",
				slog.String("op", op),
				slog.String("sid", redact.SID(sid)),
				slog.Int("status", fault.Status),
			)

			if cerr := m.localCleanup(ctx, sid); cerr != nil {
				lg.Error("refresh_cleanup_failed",
					slog.String("op", op),
					slog.String("err", cerr.Error()),
				)
			}

			return nil, fmt.Errorf("%s: %w", op, ErrRefreshRejected)
		}

		if err := m.store.SaveAccess(ctx, sid, fresh.AccessToken); err != nil {
			return nil, fmt.Errorf("%s: save access token: %w", op, err)
		}
		// Upstream может ротировать и refresh-токен.
		if fresh.RefreshToken != "" {
			if err := m.store.SaveRefresh(ctx, sid, fresh.RefreshToken); err != nil {
				return nil, fmt.Errorf("%s: save refresh token: %w", op, err)
			}
		}

		lg.Info("refresh_ok",
			slog.String("op", op),
			slog.String("sid", redact.SID(sid)),
		)

		return nil, nil
	})

	return err
}

// Logout завершает сессию. Ревокация на upstream — best-effort:
// недоступный сервер не оставляет пользователя «застрявшим» в системе,
// локальные токены и кэш профиля уничтожаются безусловно.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	const op = "session.Manager.Logout"

	lg := logctx.From(ctx)

	pair, err := m.store.Pair(ctx, sid)
	if err != nil {
		return fmt.Errorf("%s: token store: %w", op, err)
	}

	if pair.Access != "" || pair.Refresh != "" {
		fault, err := m.auth.Logout(ctx, pair.Access, pair.Refresh)
		if err != nil {
			lg.Warn("logout_revoke_unreachable",
				slog.String("op", op),
				slog.String("sid", redact.SID(sid)),
				slog.String("err", err.Error()),
			)
		} else if fault != nil {
			lg.Warn("logout_revoke_rejected",
				slog.String("op", op),
				slog.String("sid", redact.SID(sid)),
				slog.Int("status", fault.Status),
			)
		}
	}

	if err := m.localCleanup(ctx, sid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("logout_ok",
		slog.String("op", op),
		slog.String("sid", redact.SID(sid)),
	)

	return nil
}

// CurrentUser возвращает профиль аутентифицированного пользователя,
// кэшируя его до конца сессии. Вызов без аутентификации вернёт Fault
// от upstream — гейтить обязан вызывающий.
func (m *Manager) CurrentUser(ctx context.Context, sid string) (models.User, *upstream.Fault, error) {
	const op = "session.Manager.CurrentUser"

	m.mu.RLock()
	cached, ok := m.profiles[sid]
	m.mu.RUnlock()
	if ok {
		return cached, nil, nil
	}

	user, fault, err := m.auth.WhoAmI(upstream.WithSID(ctx, sid))
	if err != nil {
		return models.User{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if fault != nil {
		return models.User{}, fault, nil
	}

	m.mu.Lock()
	m.profiles[sid] = user
	m.mu.Unlock()

	return user, nil, nil
}

// localCleanup уничтожает токены и кэш профиля сессии.
func (m *Manager) localCleanup(ctx context.Context, sid string) error {
	m.mu.Lock()
	delete(m.profiles, sid)
	m.mu.Unlock()

	return m.store.Destroy(ctx, sid)
}

// accessExpiry достаёт exp-клейм без проверки подписи.
func accessExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims

	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
