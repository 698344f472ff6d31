package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceError_Error(t *testing.T) {
	err := New(CodeNotFound, "table not found")
	assert.Equal(t, "NOT_FOUND: table not found", err.Error())

	wrapped := Wrap(errors.New("no such table: foo"), CodeQueryFailed, "query failed")
	assert.Equal(t, "QUERY_FAILED: query failed (caused by: no such table: foo)", wrapped.Error())
}

func TestServiceError_Unwrap(t *testing.T) {
	cause := errors.New("disk I/O error")
	wrapped := Wrap(cause, CodeConnectionFailed, "connection failed")

	assert.True(t, errors.Is(wrapped, cause))
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}

func TestServiceError_IsByCode(t *testing.T) {
	err := New(CodeNotFound, "something specific")
	assert.True(t, errors.Is(err, ErrTableNotFound))
	assert.False(t, errors.Is(err, ErrUserExists))
}

func TestServiceError_WithDetail(t *testing.T) {
	err := New(CodeInvalidRequest, "bad input").WithDetail("field", "username")
	require.NotNil(t, err.Details)
	assert.Equal(t, "username", err.Details["field"])
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInternal, "unused"))
	assert.Nil(t, Wrapf(nil, CodeInternal, "unused %d", 1))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"not found direct", ErrUserNotFound, IsNotFound, true},
		{"not found wrapped", fmt.Errorf("lookup: %w", ErrUserNotFound), IsNotFound, true},
		{"not found mismatch", ErrUserExists, IsNotFound, false},
		{"already exists", ErrEmailExists, IsAlreadyExists, true},
		{"unauthorized", ErrInvalidCredentials, IsUnauthorized, true},
		{"unauthorized mismatch", ErrUserInactive, IsUnauthorized, false},
		{"plain error", errors.New("nope"), IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestGetCodeAndMessage(t *testing.T) {
	assert.Equal(t, CodeUnauthorized, GetCode(ErrInvalidToken))
	assert.Equal(t, "invalid or expired token", GetMessage(ErrInvalidToken))

	plain := errors.New("boom")
	assert.Equal(t, CodeInternal, GetCode(plain))
	assert.Equal(t, "boom", GetMessage(plain))

	wrapped := fmt.Errorf("outer: %w", ErrUserNotFound)
	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.Equal(t, "user not found", GetMessage(wrapped))
}
