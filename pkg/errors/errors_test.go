package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrMethodNotAllowed(t *testing.T) {
	err := ErrMethodNotAllowed()
	require.Equal(t, http.StatusMethodNotAllowed, err.Code)
	assert.Equal(t, "GET, HEAD, OPTIONS", err.Headers.Get("Allow"))

	rec := httptest.NewRecorder()
	err.Write(rec)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD, OPTIONS", rec.Header().Get("Allow"))
	assert.Equal(t, "Method not allowed", rec.Body.String())
}

func TestErrRangeNotSatisfiable(t *testing.T) {
	err := ErrRangeNotSatisfiable("bytes */0")
	rec := httptest.NewRecorder()
	err.Write(rec)
	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, rec.Code)
	assert.Equal(t, "bytes */0", rec.Header().Get("Content-Range"))
}

func TestWithCauseUnwrap(t *testing.T) {
	cause := assert.AnError
	err := ErrInternal(cause)
	assert.Same(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "internal_error")
}
