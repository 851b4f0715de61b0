package handlers

import (
	"net/http"

	apierrors "github.com/lumed/spectra-console/internal/errors"
	"github.com/lumed/spectra-console/internal/guard"
)

// pageInfo — ответ страничного маршрута: метаданные для фронта
// (заголовок вкладки, выбор лейаута).
type pageInfo struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Layout string `json:"layout,omitempty"`
}

// Page строит обработчик страничного маршрута: навигация сначала
// проходит цепочку guard-проверок, затем отдаются метаданные страницы.
// Redirect-решение превращается в 303 See Other, отказ — в 403.
func (h *Handlers) Page(route guard.Route, chain []guard.Middleware) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nav := &guard.Navigation{
			To:   route,
			From: guard.Route{Path: r.Header.Get("X-From-Path")},
		}

		decision, err := guard.Run(r.Context(), nav, chain)
		if err != nil {
			apierrors.WriteInternal(w, r)
			return
		}

		if decision != nil {
			if decision.RedirectTo != "" {
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}

			writeJSON(w, http.StatusForbidden, apierrors.ErrorResponse{
				Error: apierrors.APIError{Code: "permission_denied", Message: "navigation denied"},
			})
			return
		}

		writeJSON(w, http.StatusOK, pageInfo{
			Path:   route.Path,
			Name:   route.Name,
			Title:  route.Title,
			Layout: route.Layout,
		})
	}
}
