package handlers

import (
	"log/slog"
	"net/http"

	apierrors "github.com/lumed/spectra-console/internal/errors"
	"github.com/lumed/spectra-console/internal/models"
	"github.com/lumed/spectra-console/internal/upstream"
	logctx "github.com/lumed/spectra-console/pkg/log"
)

// Login — вход: обмен учётных данных на токены на стороне шлюза.
// Браузер токенов не видит — только cookie сессии и профиль.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteInvalidArgument(w, r)
		return
	}

	sid := upstream.SIDFrom(r.Context())

	fault, err := h.Session.Login(r.Context(), sid, in)
	if err != nil {
		logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "login_failed",
			slog.String("err", err.Error()),
		)
		apierrors.WriteUpstreamUnavailable(w, r)
		return
	}
	if fault != nil {
		apierrors.WriteFault(w, r, fault)
		return
	}

	out := models.LoginResponse{OK: true}
	// Профиль — как в SPA: подтягиваем сразу после входа; его отсутствие
	// не делает вход неуспешным.
	if user, fault, err := h.Session.CurrentUser(r.Context(), sid); err == nil && fault == nil {
		out.User = &user
	}

	writeJSON(w, http.StatusOK, out)
}

// Logout — выход. Локальная сессия завершается даже при недоступном upstream.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sid := upstream.SIDFrom(r.Context())

	if err := h.Session.Logout(r.Context(), sid); err != nil {
		logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "logout_failed",
			slog.String("err", err.Error()),
		)
		apierrors.WriteInternal(w, r)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// WhoAmI — профиль текущего пользователя.
func (h *Handlers) WhoAmI(w http.ResponseWriter, r *http.Request) {
	sid := upstream.SIDFrom(r.Context())

	user, fault, err := h.Session.CurrentUser(r.Context(), sid)
	writeResult(w, r, http.StatusOK, user, fault, err)
}
