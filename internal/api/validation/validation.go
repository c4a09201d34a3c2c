package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"artmarket/internal/platform/apierr"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Setup makes gin's validator report JSON member names instead of Go field
// names. It is safe to call more than once.
func Setup() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// Struct validates v against its binding tags.
func Struct(v any) error {
	Setup()
	return binding.Validator.ValidateStruct(v)
}

// FieldErrors converts validator failures into caller-facing field errors. It
// reports false when err carries none.
func FieldErrors(entity string, err error) ([]apierr.FieldError, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make([]apierr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apierr.FieldError{
			ObjectName: entity,
			Field:      fe.Field(),
			Message:    message(fe),
		})
	}
	return out, true
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "email":
		return "must be a well-formed email address"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "min":
		return "must be greater than or equal to " + fe.Param()
	case "max":
		return "must be less than or equal to " + fe.Param()
	default:
		return fe.Tag()
	}
}
