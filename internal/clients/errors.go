package clients

import (
	"errors"
	"fmt"
	"net/http"
)

// Ошибки удалённого API. Транспортные сбои оборачивают ErrTransport,
// ответы не-2xx — *StatusError, который разворачивается в один из sentinel'ов ниже.
var (
	ErrTransport        = errors.New("remote unreachable")
	ErrRejected         = errors.New("remote rejected request")
	ErrUnauthenticated  = errors.New("remote: unauthenticated")
	ErrPermissionDenied = errors.New("remote: permission denied")
	ErrNotFound         = errors.New("remote: not found")
	ErrConflict         = errors.New("remote: conflict")
	ErrRateLimited      = errors.New("remote: rate limited")
	ErrUnavailable      = errors.New("remote: unavailable")
	ErrDecode           = errors.New("remote: malformed response")
)

// StatusError — не-2xx ответ удалённого API.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote status %d", e.Status)
	}

	return fmt.Sprintf("remote status %d: %s", e.Status, e.Message)
}

// Unwrap отдаёт sentinel по коду ответа.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthenticated
	case e.Status == http.StatusForbidden:
		return ErrPermissionDenied
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.Status >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}

// StatusCode достаёт код ответа удалённого API из цепочки ошибок (0 — нет).
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}

	return 0
}
