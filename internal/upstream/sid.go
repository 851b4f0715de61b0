package upstream

import "context"

type sidKey struct{}

// WithSID кладёт идентификатор браузерной сессии в контекст запроса.
// Его читают транспорт (подстановка bearer-токена) и session.Manager.
func WithSID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sidKey{}, sid)
}

// SIDFrom возвращает идентификатор сессии из контекста ("" — нет сессии).
func SIDFrom(ctx context.Context) string {
	if v := ctx.Value(sidKey{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}

	return ""
}
