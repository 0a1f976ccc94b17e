package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct проверяет validate-теги тела запроса.
// Первое нарушение возвращается как *domain.RuleError с именем JSON поля
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewRuleError(domain.ErrMissingField)
	}

	first := fieldErrs[0]
	if first.Tag() == "required" {
		return domain.NewFieldError(domain.ErrMissingField, first.Field())
	}
	return domain.NewFieldError(domain.ErrInvalidSettings, first.Field())
}
