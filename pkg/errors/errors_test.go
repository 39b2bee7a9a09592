package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTracer_Wrap(t *testing.T) {
	cause := stderrors.New("connection refused")

	tracer := NewTracer("snapshot_store_error").Wrap(cause)

	assert.Equal(t, "snapshot_store_error: connection refused", tracer.Error())
	assert.True(t, stderrors.Is(tracer, cause))
	require.NotNil(t, tracer.StackTrace())
	assert.NotEmpty(t, fmt.Sprintf("%+v", tracer.StackTrace()))
}

func TestTracerFromError(t *testing.T) {
	tracer := TracerFromError(stderrors.New("boom"))

	assert.Equal(t, "boom", tracer.Error())
	assert.NotNil(t, tracer.StackTrace())
	assert.Nil(t, NewTracer("bare").StackTrace())
}

func TestErrorCodeEquals(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{
			name: "direct match",
			err:  NewErrorDetails("failed to get value", RedisGetError, "get"),
			code: RedisGetError,
			want: true,
		},
		{
			name: "wrapped by tracer",
			err:  NewTracer("load").Wrap(NewErrorDetails("failed to get value", RedisGetError, "get")),
			code: RedisGetError,
			want: true,
		},
		{
			name: "different code",
			err:  NewErrorDetails("failed to set value", RedisSetError, "set"),
			code: RedisGetError,
			want: false,
		},
		{
			name: "plain error",
			err:  stderrors.New("plain"),
			code: RedisGetError,
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorCodeEquals(tc.err, tc.code))
		})
	}
}

func TestErrorDetails_WithCause(t *testing.T) {
	cause := stderrors.New("invalid character")
	err := NewErrorDetails("failed to decode command envelope", CommandDecodeError, "decode").WithCause(cause)

	assert.Equal(t, "failed to decode command envelope: invalid character", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}
