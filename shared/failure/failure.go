package failure

import (
	"errors"
	"net/http"
)

const internalMessage = "internal server error"

// Failure is an error that maps onto an HTTP status. Its message is safe to show to clients.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError   = &Failure{Code: http.StatusForbidden, Message: "missing or invalid API key"}
	EmptyUpdateError = &Failure{Code: http.StatusBadRequest, Message: "update request cannot be empty"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest keeps the message of err. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

// InternalError keeps the message of err. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, err.Error())
}

func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// Unavailable is used when an upstream the request depends on could not be reached.
func Unavailable(msg string) error {
	return newFailure(http.StatusServiceUnavailable, msg)
}

// GetCode returns the status of the first Failure in err's chain, 500 otherwise.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// PublicMessage returns the Failure message in err's chain. Errors that are not
// failures may carry driver or query details and are replaced with a generic message.
func PublicMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return internalMessage
}
