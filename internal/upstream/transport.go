// upstream — клиент REST API платформы.
//
// Пакет реализует транспорт с единым конвертом результата: любой ответ
// сервера (включая 4xx/5xx) превращается в Result, и только сетевые сбои
// (недоступный хост, оборванное соединение, битое тело успешного ответа)
// возвращаются как ошибка Go. Ретраев транспорт не делает — единственное
// исключение описано у DoAuthed (повтор после обновления access-токена).
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lumed/spectra-console/internal/tokens"
)

// Fault — ожидаемая неуспешность: upstream ответил, но не 2xx.
// Message — лучшее человекочитаемое описание из тела ответа
// (поля message/detail) либо стандартный текст статуса.
type Fault struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result — конверт результата вызова транспорта.
// Ровно один из исходов: Fault == nil и Body содержит полезную нагрузку,
// либо Fault != nil.
type Result struct {
	Status int
	Body   []byte
	Fault  *Fault
}

// OK сообщает, что вызов завершился успешным ответом upstream.
func (r Result) OK() bool { return r.Fault == nil }

// Refresher обновляет access-токен сессии. Реализуется session.Manager;
// интерфейс нужен транспорту, чтобы не зависеть от пакета session.
type Refresher interface {
	Refresh(ctx context.Context, sid string) error
}

// Transport — HTTP-транспорт к upstream с подстановкой bearer-токена сессии.
type Transport struct {
	base      *url.URL
	client    *http.Client
	store     tokens.Store
	refresher Refresher
}

// New создаёт транспорт. store нужен для подстановки access-токена;
// таймаут ограничивает каждый исходящий вызов целиком.
func New(baseURL string, timeout time.Duration, store tokens.Store) (*Transport, error) {
	const op = "upstream.New"

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: base url %q must be absolute", op, baseURL)
	}

	return &Transport{
		base:   u,
		client: &http.Client{Timeout: timeout},
		store:  store,
	}, nil
}

// SetRefresher подключает обновление токена; вызывается один раз при сборке
// приложения, после создания session.Manager.
func (t *Transport) SetRefresher(r Refresher) { t.refresher = r }

type callOpts struct {
	query       url.Values
	contentType string
	noAuth      bool
}

// CallOption — настройка одного вызова транспорта.
type CallOption func(*callOpts)

// WithQuery добавляет query-параметры к URL (пагинация, фильтры).
func WithQuery(q url.Values) CallOption {
	return func(o *callOpts) { o.query = q }
}

// WithContentType задаёт Content-Type для сырого тела ([]byte).
func WithContentType(ct string) CallOption {
	return func(o *callOpts) { o.contentType = ct }
}

// WithoutAuth отключает подстановку bearer-токена (login/refresh).
func WithoutAuth() CallOption {
	return func(o *callOpts) { o.noAuth = true }
}

// Do выполняет один вызов upstream и нормализует результат в конверт.
// body: nil — без тела; []byte — как есть (Content-Type через опцию);
// прочее — сериализуется в JSON. Авто-повторов нет.
func (t *Transport) Do(ctx context.Context, method, path string, body any, opts ...CallOption) (Result, error) {
	const op = "upstream.Transport.Do"

	var o callOpts
	for _, apply := range opts {
		apply(&o)
	}

	u := *t.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if o.query != nil {
		u.RawQuery = o.query.Encode()
	}

	var (
		reader      io.Reader
		contentType string
	)

	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
		contentType = o.contentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return Result{}, fmt.Errorf("%s: marshal body: %w", op, err)
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return Result{}, fmt.Errorf("%s: build request: %w", op, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if !o.noAuth {
		if sid := SIDFrom(ctx); sid != "" {
			pair, err := t.store.Pair(ctx, sid)
			if err != nil {
				return Result{}, fmt.Errorf("%s: token store: %w", op, err)
			}
			if pair.Access != "" {
				req.Header.Set("Authorization", "Bearer "+pair.Access)
			}
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		// Сетевой сбой — невосстановимая ошибка, конверта нет.
		return Result{}, fmt.Errorf("%s: %s %s: %w", op, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Status: resp.StatusCode, Body: raw}, nil
	}

	return Result{
		Status: resp.StatusCode,
		Fault:  faultFrom(resp.StatusCode, raw),
	}, nil
}

// DoAuthed — Do плюс единственный повтор после обновления access-токена:
// если upstream ответил 401, а у сессии есть чем обновиться, транспорт
// просит Refresher обновить токен и повторяет исходный запрос один раз.
// Неуспешное обновление терминально — возвращается исходный 401.
func (t *Transport) DoAuthed(ctx context.Context, method, path string, body any, opts ...CallOption) (Result, error) {
	res, err := t.Do(ctx, method, path, body, opts...)
	if err != nil {
		return res, err
	}

	if res.Fault == nil || res.Fault.Status != http.StatusUnauthorized {
		return res, nil
	}

	sid := SIDFrom(ctx)
	if sid == "" || t.refresher == nil {
		return res, nil
	}

	if rerr := t.refresher.Refresh(ctx, sid); rerr != nil {
		return res, nil
	}

	return t.Do(ctx, method, path, body, opts...)
}

// faultFrom собирает failure-вариант конверта из статуса и тела ответа.
// Гарантия: Message всегда непустой (текст сервера либо стандартный текст статуса).
func faultFrom(status int, raw []byte) *Fault {
	f := &Fault{
		Status: status,
		Code:   codeFromStatus(status),
	}

	// Upstream отдаёт либо {"message": "..."}, либо FastAPI-стиль {"detail": "..."}.
	var payload struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch {
		case payload.Message != "":
			f.Message = payload.Message
		case len(payload.Detail) > 0:
			var s string
			if err := json.Unmarshal(payload.Detail, &s); err == nil {
				f.Message = s
			}
		}
	}

	if f.Message == "" {
		f.Message = http.StatusText(status)
	}
	if f.Message == "" {
		f.Message = "upstream error"
	}

	return f
}

// codeFromStatus — стабильный машиночитаемый код для фронта.
func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "invalid_argument"
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "permission_denied"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusPreconditionFailed:
		return "failed_precondition"
	case http.StatusTooManyRequests:
		return "resource_exhausted"
	case http.StatusNotImplemented:
		return "unimplemented"
	case http.StatusServiceUnavailable:
		return "unavailable"
	case http.StatusGatewayTimeout:
		return "deadline_exceeded"
	default:
		if status >= 500 {
			return "internal"
		}
		return "failed"
	}
}
