package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. Returning an error stops
// the chain and the error is rendered to client.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, even if the request failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRoutes

	// ctx carries the service dependencies which are inherited by every
	// request context.
	ctx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{engine: engine, inner: engine, ctx: ctx}
}

// Branch returns a child router sharing the engine. Middlewares added to the
// child do not affect the parent.
func (r *Router) Branch() *Router {
	return &Router{
		engine:  r.engine,
		inner:   r.inner,
		ctx:     r.ctx,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response], opts ...Option) {
	r.inner.GET(pattern, wrapHandler(r, handler, opts...))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response], opts ...Option) {
	r.inner.POST(pattern, wrapHandler(r, handler, opts...))
}

func PATCH[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response], opts ...Option) {
	r.inner.PATCH(pattern, wrapHandler(r, handler, opts...))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response], opts ...Option) {
	r.inner.DELETE(pattern, wrapHandler(r, handler, opts...))
}

// Raw registers a plain http.Handler, the middlewares of router are not
// applied.
func (r *Router) Raw(method, pattern string, handler http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(handler))
}

func (r *Router) Static(relativePath, root string) {
	r.inner.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
