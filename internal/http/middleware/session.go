package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lumed/spectra-console/internal/upstream"
)

// Session обеспечивает каждому браузеру идентификатор сессии:
// читает cookie, при отсутствии выпускает новый sid и ставит cookie.
// sid кладётся в контекст — его читают транспорт (подстановка bearer)
// и session.Manager. Сама cookie токенов не содержит никогда.
func Session(cookieName string, secure bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(cookieName); err == nil {
				sid = c.Value
			}

			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := upstream.WithSID(r.Context(), sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
