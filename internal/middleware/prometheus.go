package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/router"
	"github.com/groove-lab/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		startTime := xcontext.StartTime(ctx)

		req := xcontext.HTTPRequest(ctx)
		code := http.StatusOK
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = errx.Code.HTTPStatus()
			} else {
				code = http.StatusInternalServerError
			}
		}

		// Label by the route pattern to keep the cardinality bounded.
		route := req.Method + " " + router.Pattern(ctx)

		for key, counter := range common.PromCounters {
			switch key {
			case common.HTTPRequestTotal:
				counter.WithLabelValues(route, fmt.Sprint(code)).Inc()
			}
		}

		if startTime.IsZero() {
			return
		}

		for key, histogram := range common.PromHistograms {
			switch key {
			case common.HTTPRequestDurationSeconds:
				histogram.WithLabelValues(route, fmt.Sprint(code)).Observe(time.Since(startTime).Seconds())
			}
		}
	}
}
