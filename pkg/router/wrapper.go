package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/groove-lab/backend/pkg/xcontext"
)

type patternKey struct{}

// Pattern returns the route pattern which matched the request, such as
// /events/:event_id.
func Pattern(ctx context.Context) string {
	pattern, _ := ctx.Value(patternKey{}).(string)
	return pattern
}

func wrapHandler[Request, Response any](
	router *Router,
	handler HandlerFunc[Request, Response],
	opts ...Option,
) gin.HandlerFunc {
	o := newOptions(opts...)

	return func(c *gin.Context) {
		ctx := xcontext.Inherit(c.Request.Context(), router.ctx)
		ctx = xcontext.WithHTTPRequest(ctx, c.Request)
		ctx = context.WithValue(ctx, patternKey{}, c.FullPath())

		ctx, err := serve(ctx, c, router, handler)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(c, err)
		} else {
			writeData(c, o, xcontext.Response(ctx))
		}

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func serve[Request, Response any](
	ctx context.Context,
	c *gin.Context,
	router *Router,
	handler HandlerFunc[Request, Response],
) (context.Context, error) {
	var err error
	for _, before := range router.befores {
		if ctx, err = runMiddleware(ctx, before); err != nil {
			return ctx, err
		}
	}

	var req Request
	if err := bind(c, &req); err != nil {
		return ctx, err
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return ctx, err
	}
	ctx = xcontext.WithResponse(ctx, resp)

	for _, after := range router.afters {
		if ctx, err = runMiddleware(ctx, after); err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}

// runMiddleware keeps the input context when the middleware fails without
// returning one.
func runMiddleware(ctx context.Context, middleware MiddlewareFunc) (context.Context, error) {
	newCtx, err := middleware(ctx)
	if newCtx == nil {
		newCtx = ctx
	}

	return newCtx, err
}
