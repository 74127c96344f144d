// Package validation checks typed request models with go-playground/validator
// and turns failures into a common.ValidationError keyed by JSON field names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/khonsu303/estudio/internal/common"
)

// isoLayouts are tried in order by ParseISODate. Values without a zone are UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISODate parses the ISO-8601 forms accepted for event dates.
func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := ParseISODate(fl.Field().String())
		return ok
	})

	return &Validator{v: v}
}

// Struct validates s. A failure is always a *common.ValidationError listing
// every offending field in declaration order.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &common.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, common.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", f, fe.Param())
	case "min":
		if fe.Param() == "1" {
			return f + " cannot be empty"
		}
		return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
	case "email":
		return "please add a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "isodate":
		return f + " must be an ISO-8601 date"
	case "uuid":
		return f + " must be a valid id"
	default:
		return fmt.Sprintf("%s failed %s validation", f, fe.Tag())
	}
}
