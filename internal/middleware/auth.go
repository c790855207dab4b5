package middleware

import (
	"context"
	"strings"

	"github.com/groove-lab/backend/internal/model"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/router"
	"github.com/groove-lab/backend/pkg/xcontext"
)

// Authenticate verifies the bearer access token and puts its principal into
// the context.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
		scheme, token, found := strings.Cut(authorization, " ")
		if !found || scheme != "Bearer" || token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired access token")
		}

		if accessToken.ID == 0 {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithAccessToken(ctx, accessToken), nil
	}
}
