package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeKeywordNotFound, "no keyword matched")
	assert.Equal(t, "keyword_not_found error: no keyword matched", err.Error())

	wrapped := Wrap(fmt.Errorf("read tcp: connection reset"), ErrorTypeBrowser, "navigation failed")
	assert.Contains(t, wrapped.Error(), "browser error: navigation failed")
	assert.Contains(t, wrapped.Error(), "connection reset")
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, ErrorTypeCache, "write artifact")

	assert.True(t, stderrors.Is(err, cause))
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "typed error",
			err:  New(ErrorTypeFetchFailure, "no matching chart"),
			want: ErrorTypeFetchFailure,
		},
		{
			name: "wrapped deeper in a chain",
			err:  fmt.Errorf("run: %w", New(ErrorTypeAuth, "login rejected")),
			want: ErrorTypeAuth,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("plain"),
			want: ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(New(ErrorTypeFetchFailure, "timed out waiting for charts")))

	for _, errorType := range []ErrorType{
		ErrorTypeKeywordNotFound,
		ErrorTypeCache,
		ErrorTypeAuth,
		ErrorTypeBrowser,
		ErrorTypeConfiguration,
	} {
		assert.False(t, IsRecoverable(New(errorType, "fatal")), "type %s", errorType)
	}

	assert.False(t, IsRecoverable(fmt.Errorf("untyped")))
}
