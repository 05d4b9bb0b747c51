package dining

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los errores usan el nombre del campo en la API, no el del struct.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate revisa las restricciones del registro ya normalizado.
func (e DiningEvent) Validate() error {
	if e.Date.IsZero() {
		return invalid("date", nil, "is required")
	}

	err := validate.Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), nil, "is required")
	case "gte":
		return invalid(fe.Field(), fe.Value(), "must be >= "+fe.Param())
	case "lte":
		return invalid(fe.Field(), fe.Value(), "must be <= "+fe.Param())
	default:
		return invalid(fe.Field(), fe.Value(), "failed "+fe.Tag())
	}
}
