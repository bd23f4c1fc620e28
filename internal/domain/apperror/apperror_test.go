package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_HTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindMissingToken:       http.StatusUnauthorized,
		KindInvalidToken:       http.StatusUnauthorized,
		KindTokenExpired:       http.StatusUnauthorized,
		KindInvalidCredentials: http.StatusUnauthorized,
		KindConflict:           http.StatusConflict,
		KindValidation:         http.StatusBadRequest,
		KindNotFound:           http.StatusNotFound,
		KindForbidden:          http.StatusForbidden,
		KindStoreUnavailable:   http.StatusInternalServerError,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), kind.String())
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("update: %w", Forbidden("nope"))
	assert.Equal(t, KindForbidden, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestError_IsMatchesKind(t *testing.T) {
	err := NotFound("article not found")
	assert.ErrorIs(t, err, NotFound(""))
	assert.NotErrorIs(t, err, Forbidden(""))
}

func TestStoreUnavailable_HidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	err := StoreUnavailable(cause)
	assert.Equal(t, "internal server error", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Message, "10.0.0.1")
}
