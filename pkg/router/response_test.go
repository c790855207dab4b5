package router

import (
	"errors"
	"io/fs"
	"net/http"
	"testing"

	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func Test_newProblem(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
		wantField  string
		wantError  string
	}{
		{
			name:       "client error hides type",
			err:        errorx.New(errorx.Conflict, "Event capacity exceeded"),
			wantStatus: http.StatusConflict,
			wantDetail: "Event capacity exceeded",
		},
		{
			name:       "invalid field",
			err:        errorx.NewInvalidField("title", "Title is required"),
			wantStatus: http.StatusBadRequest,
			wantDetail: "Title is required",
			wantField:  "title",
		},
		{
			name:       "wrapped internal error shows cause type",
			err:        errorx.Wrap(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Request failed",
			wantError:  "*fs.PathError",
		},
		{
			name:       "bare unknown error",
			err:        errorx.Unknown,
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Request failed",
			wantError:  "errorx.Error",
		},
		{
			name:       "unhandled error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Request failed",
			wantError:  "*errors.errorString",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProblem("/events/1/join", tt.err)
			require.Equal(t, tt.wantStatus, p.Status)
			require.Equal(t, tt.wantDetail, p.Detail)
			require.Equal(t, tt.wantField, p.Field)
			require.Equal(t, tt.wantError, p.Error)
			require.Equal(t, "/events/1/join", p.Instance)
		})
	}
}
