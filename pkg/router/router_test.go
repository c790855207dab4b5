package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/router"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	ID     int64  `uri:"id" validate:"required"`
	Name   string `json:"name" validate:"required,max=5"`
	Offset int    `form:"offset"`
}

type echoResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	UserID int64  `json:"user_id"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "boom" {
		return nil, errorx.New(errorx.Conflict, "Boom")
	}

	return &echoResponse{
		ID:     req.ID,
		Name:   req.Name,
		Offset: req.Offset,
		UserID: xcontext.RequestUserID(ctx),
	}, nil
}

func newTestRouter(t *testing.T) (*router.Router, *[]string) {
	t.Helper()

	var closed []string
	r := router.New(testutil.MockContext())
	r.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("X-Deny") != "" {
			return nil, errorx.New(errorx.Unauthenticated, "Denied")
		}

		return xcontext.WithRequestUserID(ctx, 7), nil
	})
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, xcontext.HTTPRequest(ctx).URL.Path)
	})

	router.POST(r, "/echo/:id", echo, router.WithStatus(http.StatusCreated), router.WithMessage("created"))
	return r, &closed
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		deny       bool
		wantStatus int
		wantField  string
	}{
		{
			name:       "success",
			path:       "/echo/3?offset=10",
			body:       `{"name":"abc"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "validation failure",
			path:       "/echo/3",
			body:       `{"name":"too long name"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "name",
		},
		{
			name:       "invalid path param",
			path:       "/echo/abc",
			body:       `{"name":"abc"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "domain error",
			path:       "/echo/3",
			body:       `{"name":"boom"}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "middleware error",
			path:       "/echo/3",
			body:       `{"name":"abc"}`,
			deny:       true,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, closed := newTestRouter(t)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.deny {
				req.Header.Set("X-Deny", "1")
			}

			w := httptest.NewRecorder()
			r.Handler().ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			require.Len(t, *closed, 1)

			if tt.wantStatus == http.StatusCreated {
				var resp struct {
					Data    echoResponse `json:"data"`
					Message string       `json:"message"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Equal(t, "created", resp.Message)
				require.Equal(t, echoResponse{ID: 3, Name: "abc", Offset: 10, UserID: 7}, resp.Data)
				return
			}

			var problem map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
			require.Equal(t, float64(tt.wantStatus), problem["status"])
			require.Equal(t, req.URL.Path, problem["instance"])
			if tt.wantField != "" {
				require.Equal(t, tt.wantField, problem["field"])
			}
		})
	}
}
