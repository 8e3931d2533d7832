package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared request payload validator. Errors report the json
// field name, so messages match what the client actually sent.
var Validate = validator.New()

func init() {
	Validate.RegisterTagNameFunc(func(fd reflect.StructField) string {
		name := strings.SplitN(fd.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fd.Name
		}
		return name
	})
}

// ValidationMessage flattens validator errors into a single readable line
// suitable for an error response.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "email":
			parts = append(parts, "invalid email address")
		case "min":
			parts = append(parts, field+" is too short")
		case "oneof":
			parts = append(parts, field+" must be one of: "+fe.Param())
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, ", ")
}
