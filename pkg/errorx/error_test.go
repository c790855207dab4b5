package errorx

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{code: BadRequest, want: http.StatusBadRequest},
		{code: Unauthenticated, want: http.StatusUnauthorized},
		{code: PermissionDenied, want: http.StatusForbidden},
		{code: NotFound, want: http.StatusNotFound},
		{code: AlreadyExists, want: http.StatusConflict},
		{code: Conflict, want: http.StatusConflict},
		{code: Internal, want: http.StatusInternalServerError},
		{code: Code(1), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_Wrapped(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewInvalidField("title", "Title is required"))

	var errx Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, BadRequest, errx.Code)
	require.Equal(t, "title", errx.Field)
	require.Equal(t, "Title is required", errx.Error())
}

func TestWrap(t *testing.T) {
	cause := &net.OpError{Op: "dial", Err: errors.New("refused")}
	err := Wrap(cause)

	require.Equal(t, Internal, err.Code)
	require.Equal(t, Unknown.Message, err.Error())
	require.Equal(t, "*net.OpError", err.CauseType())
	require.ErrorIs(t, err, cause)

	require.Equal(t, Unknown, Wrap(nil))
	require.Equal(t, "errorx.Error", Unknown.CauseType())
}
