package router

import "net/http"

type options struct {
	status  int
	message string
}

type Option func(*options)

// WithStatus overrides the status of successful responses, 200 by default.
func WithStatus(status int) Option {
	return func(o *options) {
		o.status = status
	}
}

func WithMessage(message string) Option {
	return func(o *options) {
		o.message = message
	}
}

func newOptions(opts ...Option) options {
	o := options{status: http.StatusOK, message: "success"}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
