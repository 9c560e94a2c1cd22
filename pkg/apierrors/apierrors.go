package apierrors

import (
	"errors"
	"fmt"
	"net/http"

	"hostly/mirrorbox/pkg/http/response"

	"go.uber.org/zap"
)

// Kind classifies an error into the handling taxonomy: validation and
// integrity failures surface to the caller, transient provider errors
// are retried, terminal provider errors are recorded, infrastructure
// errors are fatal to the current job.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindIntegrity
	KindConflict
	KindNotFound
	KindTransient
	KindTerminal
	KindInfrastructure
	KindInternal
)

const internalMessage = "internal error"

type Error struct {
	Kind    Kind
	Message string
	// Fields carries diagnostic values serialized into the JSON
	// response next to the error string (actualSize, maxSize, ...).
	Fields map[string]interface{}
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Integrity(message string, fields map[string]interface{}) *Error {
	return &Error{Kind: KindIntegrity, Message: message, Fields: fields}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Transient(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindTransient, Message: fmt.Sprintf(format, args...), cause: cause}
}

func Terminal(format string, args ...interface{}) *Error {
	return &Error{Kind: KindTerminal, Message: fmt.Sprintf(format, args...)}
}

func Infrastructure(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInfrastructure, Message: fmt.Sprintf(format, args...)}
}

// WrapInternal attaches call-site context to an unexpected error.
func WrapInternal(err error, context string) error {
	return &Error{Kind: KindInternal, Message: context, cause: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// IsRetryable reports whether the fan-out retry loop should try again.
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransient
}

// ToHttp writes err as a structured JSON response. Internal detail is
// never leaked to the caller, only logged.
func ToHttp(logger *zap.SugaredLogger, w http.ResponseWriter, err error) {
	var e *Error
	if !errors.As(err, &e) {
		logger.Error(err.Error())
		response.Json(logger, w, http.StatusInternalServerError, response.JSON{
			"error": internalMessage,
		})
		return
	}

	code := statusCode(e.Kind)

	body := response.JSON{"error": e.Message}
	for k, v := range e.Fields {
		body[k] = v
	}

	if code >= http.StatusInternalServerError {
		logger.Error(e.Error())
		body["error"] = internalMessage
	}

	response.Json(logger, w, code, body)
}

func statusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindIntegrity:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
