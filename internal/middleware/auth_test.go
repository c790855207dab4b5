package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/groove-lab/backend/internal/middleware"
	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/testutil"
	"github.com/groove-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	ctx := testutil.MockContext()
	validToken, err := xcontext.TokenEngine(ctx).Generate(time.Minute, model.AccessToken{
		ID:       testutil.User1.ID,
		Email:    testutil.User1.Email,
		Nickname: testutil.User1.Nickname,
	})
	require.NoError(t, err)

	expiredToken, err := xcontext.TokenEngine(ctx).Generate(-time.Minute, model.AccessToken{ID: testutil.User1.ID})
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		wantErr       bool
	}{
		{name: "valid token", authorization: "Bearer " + validToken},
		{name: "missing header", authorization: "", wantErr: true},
		{name: "wrong scheme", authorization: "Basic " + validToken, wantErr: true},
		{name: "expired token", authorization: "Bearer " + expiredToken, wantErr: true},
		{name: "garbage token", authorization: "Bearer abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			newCtx, err := middleware.Authenticate()(xcontext.WithHTTPRequest(ctx, req))
			if tt.wantErr {
				var errx errorx.Error
				require.ErrorAs(t, err, &errx)
				require.Equal(t, errorx.Unauthenticated, errx.Code)
				return
			}

			require.NoError(t, err)
			require.Equal(t, testutil.User1.ID, xcontext.RequestUserID(newCtx))

			token, ok := xcontext.AccessToken(newCtx)
			require.True(t, ok)
			require.Equal(t, testutil.User1.Nickname, token.Nickname)
		})
	}
}

func TestPrometheus_DoesNotPanicWithoutStartTime(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events/1", nil)
	ctx := xcontext.WithHTTPRequest(context.Background(), req)

	require.NotPanics(t, func() {
		middleware.Prometheus()(xcontext.WithError(ctx, errorx.New(errorx.NotFound, "Not found event")))
	})
}
