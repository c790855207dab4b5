package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groove-lab/backend/pkg/errorx"
)

type response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// problem is the error body, shaped after RFC 7807.
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
	Field    string `json:"field,omitempty"`
	Error    string `json:"error,omitempty"`
}

func writeData(c *gin.Context, o options, data any) {
	c.JSON(o.status, response{Data: data, Message: o.message})
}

func writeError(c *gin.Context, err error) {
	p := newProblem(c.Request.URL.Path, err)
	c.JSON(p.Status, p)
}

func newProblem(instance string, err error) problem {
	var errx errorx.Error
	if errors.As(err, &errx) {
		status := errx.Code.HTTPStatus()
		p := problem{
			Type:     "about:blank",
			Title:    http.StatusText(status),
			Status:   status,
			Detail:   errx.Message,
			Instance: instance,
			Field:    errx.Field,
		}
		if status >= http.StatusInternalServerError {
			p.Error = errx.CauseType()
		}

		return p
	}

	return problem{
		Type:     "about:blank",
		Title:    http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Detail:   errorx.Unknown.Message,
		Instance: instance,
		Error:    fmt.Sprintf("%T", err),
	}
}
