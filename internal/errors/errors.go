// errors стандартизирует ответы об ошибках HTTP-слоя simo-web.
// На вход он принимает ошибку (доменный sentinel или ошибку удалённого API),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - короткий стабильный код и безопасное message без утечки деталей.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ThisPythonJS/SimoWebsite/internal/clients"
	"github.com/ThisPythonJS/SimoWebsite/internal/cooldown"
	"github.com/ThisPythonJS/SimoWebsite/internal/inbox"
	"github.com/ThisPythonJS/SimoWebsite/internal/listing"
	"github.com/ThisPythonJS/SimoWebsite/internal/pager"
	"github.com/ThisPythonJS/SimoWebsite/internal/profile"
	"github.com/ThisPythonJS/SimoWebsite/internal/session"
	"github.com/ThisPythonJS/SimoWebsite/internal/thread"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

var (
	// ErrBadRequest — тело/параметры запроса не разобраны.
	ErrBadRequest = errors.New("bad request")
	// ErrRateLimited — превышен лимит запросов клиента.
	ErrRateLimited = errors.New("rate limited")
	// ErrInternal — внутренняя ошибка (в т.ч. паника).
	ErrInternal = errors.New("internal")
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
// Fields — нарушения по полям формы (только для invalid_argument).
type APIError struct {
	Code      string               `json:"code"`
	Message   string               `json:"message"`
	RequestID string               `json:"request_id,omitempty"`
	Fields    []listing.FieldError `json:"fields,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

type rule struct {
	targets []error
	status  int
	code    string
	message string
}

// table — порядок важен: первая совпавшая строка побеждает.
// Контекстные ошибки стоят первыми, т.к. транспортные сбои их оборачивают.
var table = []rule{
	{[]error{context.Canceled}, StatusClientClosedRequest, "canceled", "canceled"},
	{[]error{context.DeadlineExceeded}, http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"},

	{[]error{ErrBadRequest, thread.ErrInvalidArgument, inbox.ErrInvalidArgument, profile.ErrInvalidArgument,
		listing.ErrInvalidArgument, cooldown.ErrInvalidArgument, session.ErrLoginState},
		http.StatusBadRequest, "invalid_argument", "invalid argument"},
	{[]error{cooldown.ErrLoginRequired, thread.ErrLoginRequired, inbox.ErrLoginRequired, profile.ErrLoginRequired,
		listing.ErrLoginRequired, session.ErrInvalidToken},
		http.StatusUnauthorized, "unauthenticated", "login required"},
	{[]error{thread.ErrPermissionDenied, listing.ErrPermissionDenied}, http.StatusForbidden, "permission_denied", "permission denied"},
	{[]error{thread.ErrNotFound, inbox.ErrNotFound}, http.StatusNotFound, "not_found", "not found"},
	{[]error{pager.ErrBusy, cooldown.ErrBusy, thread.ErrBusy, inbox.ErrBusy, profile.ErrBusy},
		http.StatusConflict, "busy", "operation already in progress"},
	{[]error{thread.ErrReplyExists}, http.StatusConflict, "already_exists", "reply already exists"},
	{[]error{thread.ErrAlreadyReviewed}, http.StatusConflict, "already_exists", "feedback already exists"},
	{[]error{cooldown.ErrNotAllowed}, http.StatusPreconditionFailed, "failed_precondition", "action not allowed yet"},
	{[]error{pager.ErrExhausted}, http.StatusPreconditionFailed, "failed_precondition", "nothing more to load"},
	{[]error{thread.ErrInvalidTransition, thread.ErrNoReply, profile.ErrNotLoaded, profile.ErrNoChanges},
		http.StatusPreconditionFailed, "failed_precondition", "failed precondition"},
	{[]error{ErrRateLimited, clients.ErrRateLimited}, http.StatusTooManyRequests, "resource_exhausted", "too many requests"},

	{[]error{clients.ErrUnauthenticated}, http.StatusUnauthorized, "unauthenticated", "unauthenticated"},
	{[]error{clients.ErrPermissionDenied}, http.StatusForbidden, "permission_denied", "permission denied"},
	{[]error{clients.ErrNotFound}, http.StatusNotFound, "not_found", "not found"},
	{[]error{clients.ErrConflict}, http.StatusConflict, "conflict", "conflict"},
	{[]error{clients.ErrRejected}, http.StatusBadRequest, "rejected", "rejected by remote"},
	{[]error{clients.ErrDecode}, http.StatusBadGateway, "bad_gateway", "malformed remote response"},
	{[]error{clients.ErrTransport, clients.ErrUnavailable}, http.StatusServiceUnavailable, "unavailable", "service unavailable"},
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ для фронта.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - err совпал со строкой таблицы (errors.Is) - её статус/код/сообщение;
//   - иначе - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	internal := ErrorResponse{Error: APIError{Code: "internal", Message: "internal error"}}
	if err == nil {
		return http.StatusInternalServerError, internal
	}

	for _, r := range table {
		for _, target := range r.targets {
			if errors.Is(err, target) {
				resp := ErrorResponse{Error: APIError{Code: r.code, Message: r.message}}

				var ve *listing.ValidationError
				if errors.As(err, &ve) {
					resp.Error.Fields = ve.Fields
				}

				return r.status, resp
			}
		}
	}

	return http.StatusInternalServerError, internal
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
