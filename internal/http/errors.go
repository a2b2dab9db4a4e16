package http

import (
	"errors"
	"net/http"

	"saldo/internal/analytics"
	"saldo/internal/core"
	applog "saldo/internal/log"
	"saldo/internal/services"
)

// requestError is a malformed or incomplete request; its message is shown
// to the client as is.
type requestError struct {
	msg string
	err error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *requestError) Unwrap() error { return e.err }

func badRequest(msg string, err error) error {
	return &requestError{msg: msg, err: err}
}

var clientErrors = []error{
	core.ErrInvalidKind,
	core.ErrInvalidAmount,
	core.ErrEmptyLabel,
	core.ErrLabelTooLong,
	core.ErrInvalidDate,
	core.ErrEmptyFullName,
	core.ErrInvalidEmail,
	core.ErrWeakPassword,
	core.ErrInvalidCredentials,
	services.ErrInvalidRange,
}

// statusFor maps a service error to its HTTP status, client message and
// log category. Unknown errors are internal and never leak their text.
func statusFor(err error) (int, string, string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, reqErr.msg, applog.ErrorTypeValidation
	}
	var pre *analytics.PreconditionError
	if errors.As(err, &pre) {
		return http.StatusBadRequest, "Invalid " + pre.Field, applog.ErrorTypeValidation
	}
	if errors.Is(err, analytics.ErrPrecondition) {
		return http.StatusBadRequest, "Invalid period", applog.ErrorTypeValidation
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, capitalize(target.Error()), applog.ErrorTypeValidation
		}
	}

	switch {
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, "Access denied", applog.ErrorTypeAuth
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "Not found", applog.ErrorTypeNotFound
	case errors.Is(err, core.ErrEmailTaken):
		return http.StatusConflict, "Email already in use", applog.ErrorTypeConflict
	default:
		return http.StatusInternalServerError, "Server error", applog.ErrorTypeInternal
	}
}

// writeError logs err under op and writes the matching error envelope.
// Client errors log at warn, server errors at error.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg, errType := statusFor(err)
	ctx := r.Context()
	if status >= http.StatusInternalServerError {
		applog.LogError(ctx, "Request failed", err, errType, op)
	} else {
		applog.FromContext(ctx).WarnContext(ctx, "Request rejected",
			applog.NewFields().WithError(err).WithErrorType(errType).WithOperation(op).Args()...)
	}
	ErrorResponse(status, msg).Write(w)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
