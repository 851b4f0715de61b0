// errors стандартизирует ответы об ошибках HTTP-слоя консоли.
// На вход — либо Fault от upstream (ожидаемая неуспешность),
// либо обычная ошибка Go (сетевой сбой, паника, битый ввод);
// на выход — корректный HTTP-статус и краткое безопасное message.
//
// Fault пробрасывается с сохранением статуса и сообщения upstream:
// консоль сознательно не схлопывает «не найдено» и «ошибка валидации»
// в один неразличимый ответ.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/lumed/spectra-console/internal/upstream"
)

// APIError — единый формат ошибки для фронта.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// FromFault конвертирует failure-вариант конверта upstream в HTTP-ответ.
// nil-Fault — это программная ошибка вызова: отвечаем 500/internal,
// чтобы не замаскировать баг ответом «200 OK».
func FromFault(f *upstream.Fault) (int, ErrorResponse) {
	if f == nil {
		return internalResponse()
	}

	status := f.Status
	// Не транслируем наружу экзотику; всё неожиданное — 502 от шлюза.
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}

	return status, ErrorResponse{
		Error: APIError{
			Code:    f.Code,
			Message: f.Message,
		},
	}
}

// WriteFault — хелпер для HTTP-хендлеров: пишет статус/тело по Fault,
// добавляя request_id из заголовка, если он есть.
func WriteFault(w http.ResponseWriter, r *http.Request, f *upstream.Fault) {
	status, resp := FromFault(f)
	write(w, r, status, resp)
}

// WriteInvalidArgument — локальная ошибка разбора входа (битый JSON и т.п.).
func WriteInvalidArgument(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusBadRequest, ErrorResponse{
		Error: APIError{Code: "invalid_argument", Message: "invalid argument"},
	})
}

// WriteUpstreamUnavailable — невосстановимый сбой транспорта:
// upstream недоступен либо прислал нечитаемый ответ.
func WriteUpstreamUnavailable(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusBadGateway, ErrorResponse{
		Error: APIError{Code: "upstream_unavailable", Message: "upstream unavailable"},
	})
}

// WriteInternal — непредвиденная внутренняя ошибка (паника и т.п.).
// Детали наружу не отдаются.
func WriteInternal(w http.ResponseWriter, r *http.Request) {
	status, resp := internalResponse()
	write(w, r, status, resp)
}

func internalResponse() (int, ErrorResponse) {
	return http.StatusInternalServerError, ErrorResponse{
		Error: APIError{Code: "internal", Message: "internal error"},
	}
}

func write(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	// Прокидываем request_id для фронта, чтобы баг-репорты имели привязку.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
