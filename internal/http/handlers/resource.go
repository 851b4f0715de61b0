package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/lumed/spectra-console/internal/errors"
	"github.com/lumed/spectra-console/internal/upstream"
)

// Обработчики CRUD для любой коллекции: привязывают Resource[T, D]
// к стандартным маршрутам. Тело create/update задаётся типом In —
// так строгий декодер отсекает неизвестные поля для каждой сущности.

func listResource[T, D any](res *upstream.Resource[T, D]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, fault, err := res.List(r.Context(), r.URL.Query())
		writeResult(w, r, http.StatusOK, items, fault, err)
	}
}

func getResource[T, D any](res *upstream.Resource[T, D]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, fault, err := res.Get(r.Context(), chi.URLParam(r, "id"))
		writeResult(w, r, http.StatusOK, item, fault, err)
	}
}

func createResource[T, D, In any](res *upstream.Resource[T, D]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeStrict(r, &in); err != nil {
			apierrors.WriteInvalidArgument(w, r)
			return
		}

		item, fault, err := res.Create(r.Context(), in)
		writeResult(w, r, http.StatusCreated, item, fault, err)
	}
}

func updateResource[T, D, In any](res *upstream.Resource[T, D]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeStrict(r, &in); err != nil {
			apierrors.WriteInvalidArgument(w, r)
			return
		}

		item, fault, err := res.Update(r.Context(), chi.URLParam(r, "id"), in)
		writeResult(w, r, http.StatusOK, item, fault, err)
	}
}

func deleteResource[T, D any](res *upstream.Resource[T, D]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, fault, err := res.Delete(r.Context(), chi.URLParam(r, "id"))
		writeDeleted(w, r, ok, fault, err)
	}
}
