package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrDuplicateEntry, http.StatusConflict},
		{ErrConflict, http.StatusConflict},
		{ErrUnavailable, http.StatusServiceUnavailable},
		{ErrTimeout, http.StatusGatewayTimeout},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrTokenExpired, http.StatusUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized},
		{ErrInternal, http.StatusInternalServerError},
		{fmt.Errorf("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusCode(tc.err), tc.err.Error())
	}
}

func TestStatusCode_WrappedError(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "load record")
	assert.Equal(t, http.StatusNotFound, StatusCode(wrapped))
	assert.Equal(t, "NOT_FOUND", ErrorCode(wrapped))
}

func TestAppError_UnwrapsToSentinel(t *testing.T) {
	appErr := New(ErrForbidden, "somente o dono pode editar")

	assert.True(t, Is(appErr, ErrForbidden))
	assert.Equal(t, "somente o dono pode editar", appErr.Error())
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", ErrorCode(ErrNotFound))
	assert.Equal(t, "UNAVAILABLE", ErrorCode(ErrUnavailable))
	assert.Equal(t, "CONFIG_ERROR", ErrorCode(ErrConfig))
	assert.Equal(t, "INTERNAL_ERROR", ErrorCode(fmt.Errorf("boom")))
}
