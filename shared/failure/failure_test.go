package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"studyhall/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("invalid date")),
			code:    http.StatusBadRequest,
			message: "invalid date",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("end_date must not be before start_date"),
			code:    http.StatusBadRequest,
			message: "end_date must not be before start_date",
		},
		{
			name:    "internal error",
			err:     failure.InternalError(errors.New("db down")),
			code:    http.StatusInternalServerError,
			message: "db down",
		},
		{
			name:    "not found",
			err:     failure.NotFound("layout not found"),
			code:    http.StatusNotFound,
			message: "layout not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("cabin already booked"),
			code:    http.StatusConflict,
			message: "cabin already booked",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("invalid api key"),
			code:    http.StatusForbidden,
			message: "invalid api key",
		},
		{
			name:    "unavailable",
			err:     failure.Unavailable("availability is still loading"),
			code:    http.StatusServiceUnavailable,
			message: "availability is still loading",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilErrorsStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to get booking: %w", failure.NotFound("booking not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(failure.EmptyUpdateError))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
}

func TestPublicMessage(t *testing.T) {
	wrapped := fmt.Errorf("failed to get cabin: %w", failure.NotFound("cabin not found"))

	assert.Equal(t, "cabin not found", failure.PublicMessage(wrapped))
	assert.Equal(t, "internal server error", failure.PublicMessage(errors.New("pq: relation \"cabins\" does not exist")))
}
