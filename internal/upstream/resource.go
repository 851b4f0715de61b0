package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Resource — универсальный CRUD-клиент одной коллекции upstream.
// T — тип элемента списка, D — тип детального представления
// (для большинства сущностей совпадает с T).
//
// Один параметризованный клиент вместо дюжины одинаковых: ресурс задаётся
// базовым путём коллекции (с завершающим слэшем, как в upstream-API).
type Resource[T any, D any] struct {
	tr   *Transport
	base string // например "/api/v1/devices/"
}

// NewResource создаёт CRUD-клиент коллекции по базовому пути.
func NewResource[T any, D any](tr *Transport, base string) *Resource[T, D] {
	return &Resource[T, D]{tr: tr, base: base}
}

func (r *Resource[T, D]) item(id string) string { return r.base + id + "/" }

// List возвращает элементы коллекции; query пробрасывается как есть
// (limit/offset/фильтры — контракт владеет upstream).
func (r *Resource[T, D]) List(ctx context.Context, query url.Values) ([]T, *Fault, error) {
	const op = "upstream.Resource.List"

	res, err := r.tr.DoAuthed(ctx, http.MethodGet, r.base, nil, WithQuery(query))
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", op, r.base, err)
	}
	if res.Fault != nil {
		return nil, res.Fault, nil
	}

	var items []T
	if err := json.Unmarshal(res.Body, &items); err != nil {
		return nil, nil, fmt.Errorf("%s %s: malformed response: %w", op, r.base, err)
	}

	return items, nil, nil
}

// Get возвращает детальное представление элемента.
func (r *Resource[T, D]) Get(ctx context.Context, id string) (D, *Fault, error) {
	const op = "upstream.Resource.Get"

	var zero D

	res, err := r.tr.DoAuthed(ctx, http.MethodGet, r.item(id), nil)
	if err != nil {
		return zero, nil, fmt.Errorf("%s %s: %w", op, r.base, err)
	}
	if res.Fault != nil {
		return zero, res.Fault, nil
	}

	var d D
	if err := json.Unmarshal(res.Body, &d); err != nil {
		return zero, nil, fmt.Errorf("%s %s: malformed response: %w", op, r.base, err)
	}

	return d, nil, nil
}

// Create добавляет элемент (POST на коллекцию).
func (r *Resource[T, D]) Create(ctx context.Context, body any) (T, *Fault, error) {
	const op = "upstream.Resource.Create"

	return r.writeItem(ctx, op, http.MethodPost, r.base, body)
}

// Update частично обновляет элемент (PATCH).
func (r *Resource[T, D]) Update(ctx context.Context, id string, body any) (T, *Fault, error) {
	const op = "upstream.Resource.Update"

	return r.writeItem(ctx, op, http.MethodPatch, r.item(id), body)
}

// Delete удаляет элемент; true при успехе (обычно 204 от upstream).
func (r *Resource[T, D]) Delete(ctx context.Context, id string) (bool, *Fault, error) {
	const op = "upstream.Resource.Delete"

	res, err := r.tr.DoAuthed(ctx, http.MethodDelete, r.item(id), nil)
	if err != nil {
		return false, nil, fmt.Errorf("%s %s: %w", op, r.base, err)
	}
	if res.Fault != nil {
		return false, res.Fault, nil
	}

	return true, nil, nil
}

func (r *Resource[T, D]) writeItem(ctx context.Context, op, method, path string, body any) (T, *Fault, error) {
	var zero T

	res, err := r.tr.DoAuthed(ctx, method, path, body)
	if err != nil {
		return zero, nil, fmt.Errorf("%s %s: %w", op, r.base, err)
	}
	if res.Fault != nil {
		return zero, res.Fault, nil
	}

	var item T
	if len(res.Body) > 0 {
		if err := json.Unmarshal(res.Body, &item); err != nil {
			return zero, nil, fmt.Errorf("%s %s: malformed response: %w", op, r.base, err)
		}
	}

	return item, nil, nil
}
