// guard — цепочка навигационных проверок перед переходом на маршрут.
//
// Маршрут несёт упорядоченный список middleware; перед навигацией они
// выполняются строго последовательно. Первый вернувший решение
// (redirect или отказ) обрывает цепочку — его решение и становится
// исходом навигации. Пустая цепочка всегда пропускает.
package guard

import (
	"context"

	"github.com/lumed/spectra-console/internal/upstream"
)

// Route — метаданные маршрута консоли.
type Route struct {
	Path   string
	Name   string
	Title  string
	Layout string // "" — основной лейаут; "login" — страница входа.
}

// Navigation — контекст одного перехода: куда и откуда.
type Navigation struct {
	To   Route
	From Route
}

// Decision — исход проверки. RedirectTo задаёт перенаправление;
// пустой RedirectTo означает отказ без перенаправления.
type Decision struct {
	RedirectTo string
}

// Redirect — решение «перенаправить на другой маршрут».
func Redirect(path string) *Decision { return &Decision{RedirectTo: path} }

// Deny — решение «запретить переход».
func Deny() *Decision { return &Decision{} }

// Middleware — одна проверка навигации. nil-решение означает «пропускаю,
// пусть решают следующие».
type Middleware func(ctx context.Context, nav *Navigation) (*Decision, error)

// Run прогоняет навигацию через цепочку. Ошибки middleware прерывают
// навигацию; порядок вызова совпадает с порядком в срезе, более поздние
// middleware после чужого решения не вызываются.
func Run(ctx context.Context, nav *Navigation, chain []Middleware) (*Decision, error) {
	for _, mw := range chain {
		decision, err := mw(ctx, nav)
		if err != nil {
			return nil, err
		}
		if decision != nil {
			return decision, nil
		}
	}

	return nil, nil
}

// Authenticator — то, что guard хочет знать о сессии.
// Реализуется session.Manager.
type Authenticator interface {
	IsAuthenticated(ctx context.Context, sid string) bool
}

// RequireAuth — единственная боевая проверка: неаутентифицированная
// сессия перенаправляется на страницу входа.
func RequireAuth(a Authenticator, loginPath string) Middleware {
	return func(ctx context.Context, _ *Navigation) (*Decision, error) {
		if a.IsAuthenticated(ctx, upstream.SIDFrom(ctx)) {
			return nil, nil
		}

		return Redirect(loginPath), nil
	}
}
