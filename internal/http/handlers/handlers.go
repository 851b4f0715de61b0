package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apierrors "github.com/lumed/spectra-console/internal/errors"
	"github.com/lumed/spectra-console/internal/session"
	"github.com/lumed/spectra-console/internal/upstream"
	logctx "github.com/lumed/spectra-console/pkg/log"
)

// Handlers агрегирует зависимости HTTP-слоя: клиентов upstream и
// менеджер auth-сессий.
type Handlers struct {
	Clients *upstream.Clients
	Session *session.Manager
}

func New(cl *upstream.Clients, mgr *session.Manager) *Handlers {
	return &Handlers{Clients: cl, Session: mgr}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// writeResult разбирает тройку (значение, fault, ошибка) из upstream-слоя:
// сетевой сбой — 502, fault — ответ со статусом и сообщением upstream,
// успех — JSON с заданным статусом.
func writeResult[T any](w http.ResponseWriter, r *http.Request, status int, value T, fault *upstream.Fault, err error) {
	if err != nil {
		logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "upstream_call_failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		apierrors.WriteUpstreamUnavailable(w, r)
		return
	}
	if fault != nil {
		apierrors.WriteFault(w, r, fault)
		return
	}

	writeJSON(w, status, value)
}

// writeDeleted — исход delete-операций: пустой 204 при успехе.
func writeDeleted(w http.ResponseWriter, r *http.Request, ok bool, fault *upstream.Fault, err error) {
	if err != nil {
		logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "upstream_call_failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		apierrors.WriteUpstreamUnavailable(w, r)
		return
	}
	if fault != nil || !ok {
		apierrors.WriteFault(w, r, fault)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
