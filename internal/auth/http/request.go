package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/apierr"
)

// validate is the shared request validator. Field names in error details come
// from json tags so they match what the client actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// password enforces the character classes; length is a separate min=8 rule.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var hasUpper, hasLower, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasUpper && hasLower && hasDigit
	})

	return v
}

// decodeAndValidate parses the JSON body into dst and runs validation.
// Returns an apierr.Error ready to write on failure.
func decodeAndValidate(r *http.Request, dst any) *apierr.Error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.Validation(apierr.FieldError{Field: "body", Message: "Invalid JSON body"})
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierr.Validation(apierr.FieldError{Field: "body", Message: "Request validation failed"})
	}

	details := make([]apierr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apierr.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return apierr.Validation(details...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Password must be at least 8 characters long"
	case "password":
		return "Password must contain an uppercase letter, a lowercase letter and a number"
	default:
		return "Invalid value"
	}
}
