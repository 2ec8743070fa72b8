package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	cause := errors.New("connection refused")
	err := DatabaseError("query failed", cause, map[string]interface{}{"table": "feeds"})

	assert.Contains(t, err.Error(), "DATABASE_ERROR")
	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "connection refused")

	withoutCause := ValidationError("bad input", nil)
	assert.Equal(t, "VALIDATION_ERROR: bad input", withoutCause.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := RateLimitError("throttled", cause, nil)

	assert.ErrorIs(t, err, cause)
}

func TestAppError_HTTPStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{ValidationError("", nil), http.StatusBadRequest},
		{RateLimitError("", nil, nil), http.StatusTooManyRequests},
		{DatabaseError("", nil, nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatusCode(), string(tt.err.Code))
	}
}

func TestAppError_ToHTTPResponse(t *testing.T) {
	err := ValidationError("bad field", map[string]interface{}{"field": "x"})
	resp := err.ToHTTPResponse()

	assert.Equal(t, "error", resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Equal(t, "bad field", resp.Message)
	assert.Equal(t, "x", resp.Context["field"])
}
