package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	Validate.RegisterValidation("rrule", validateRRule)
}

func validateRRule(fl validator.FieldLevel) bool {
	_, err := rrule.StrToROption(fl.Field().String())
	return err == nil
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

// ValidateStruct returns one entry per failed field, or nil when s is valid.
func ValidateStruct(s interface{}) []*ErrorResponse {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []*ErrorResponse{{Msg: err.Error()}}
	}

	var out []*ErrorResponse
	for _, fe := range validationErrors {
		element := ErrorResponse{Field: fe.Field(), Tag: fe.Tag()}

		switch fe.Tag() {
		case "required":
			element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
		case "min":
			element.Msg = fmt.Sprintf("Field '%s' must be at least %s characters/value.", element.Field, fe.Param())
		case "max":
			element.Msg = fmt.Sprintf("Field '%s' must be at most %s characters/value.", element.Field, fe.Param())
		case "email":
			element.Msg = "Invalid email format."
		case "oneof":
			element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, fe.Param())
		case "mongodb":
			element.Msg = fmt.Sprintf("Field '%s' must be a valid id.", element.Field)
		case "datetime":
			element.Msg = fmt.Sprintf("Field '%s' must match the format %s.", element.Field, fe.Param())
		case "rrule":
			element.Msg = fmt.Sprintf("Field '%s' must be a valid RRULE.", element.Field)
		default:
			element.Msg = fmt.Sprintf("Field '%s' failed validation for tag '%s'.", element.Field, element.Tag)
		}
		out = append(out, &element)
	}
	return out
}
