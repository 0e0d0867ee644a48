package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"foodgram-service/internal/domain/domainerr"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the process-wide validator. Field names in errors are
// the json names so they match what the client sent.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs struct tags and returns a domain InvalidArgument error
// keyed by top-level field.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return domainerr.InvalidArgument(err.Error())
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		field := topLevelField(fe.Namespace())
		if _, seen := fields[field]; seen {
			continue
		}
		fields[field] = translateError(fe)
	}
	return domainerr.InvalidFields(fields)
}

// "CreateRecipeCommand.ingredients[0].amount" -> "ingredients"
func topLevelField(namespace string) string {
	if idx := strings.Index(namespace, "."); idx != -1 {
		namespace = namespace[idx+1:]
	}
	if idx := strings.IndexAny(namespace, ".["); idx != -1 {
		namespace = namespace[:idx]
	}
	return namespace
}

func translateError(fe validator.FieldError) string {
	nested := strings.Contains(fe.Namespace(), "[")
	switch fe.Tag() {
	case "required":
		if nested {
			return fmt.Sprintf("%s is required", fe.Field())
		}
		return "this field is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		if nested {
			return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "hexcolor":
		return "must be a hex color"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
