package router

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/groove-lab/backend/pkg/errorx"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "uri", "form"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}

		return field.Name
	})

	return v
}

// bind fills req with the JSON body, the query string and the path params, in
// that order, then validates it.
func bind(c *gin.Context, req any) error {
	if c.Request.ContentLength != 0 && c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(req); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid json body: %v", err)
		}
	}

	if err := binding.MapFormWithTag(req, c.Request.URL.Query(), "form"); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid query: %v", err)
	}

	if len(c.Params) > 0 {
		params := map[string][]string{}
		for _, p := range c.Params {
			params[p.Key] = []string{p.Value}
		}

		if err := binding.Uri.BindUri(params, req); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid path: %v", err)
		}
	}

	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]
			return errorx.NewInvalidField(fe.Field(), "Field %s is invalid (%s)", fe.Field(), fe.Tag())
		}

		return errorx.New(errorx.BadRequest, "Invalid request: %v", err)
	}

	return nil
}
