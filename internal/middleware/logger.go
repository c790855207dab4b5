package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/router"
	"github.com/groove-lab/backend/pkg/xcontext"
)

// Logger writes one line per request: method, path, status, duration and the
// authenticated user (0 if anonymous).
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		userID := xcontext.RequestUserID(ctx)

		var elapsed time.Duration
		if start := xcontext.StartTime(ctx); !start.IsZero() {
			elapsed = time.Since(start)
		}

		err := xcontext.Error(ctx)
		if err == nil {
			xcontext.Logger(ctx).Infof("%s %s | ok | %s | user=%d", req.Method, req.URL.Path, elapsed, userID)
			return
		}

		var errx errorx.Error
		if errors.As(err, &errx) {
			if status := errx.Code.HTTPStatus(); status >= http.StatusInternalServerError {
				xcontext.Logger(ctx).Errorf("%s %s | %d %v | %s | user=%d",
					req.Method, req.URL.Path, status, errx.Unwrap(), elapsed, userID)
				return
			}

			xcontext.Logger(ctx).Warnf("%s %s | %d %s | %s | user=%d",
				req.Method, req.URL.Path, errx.Code.HTTPStatus(), errx.Message, elapsed, userID)
			return
		}

		xcontext.Logger(ctx).Errorf("%s %s | %v | %s | user=%d", req.Method, req.URL.Path, err, elapsed, userID)
	}
}
