package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// в сообщениях используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	mustRegister(v, "date", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "yearmonth", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseYearMonth(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("handlers: register validation %q: %v", tag, err))
	}
}

// Validate проверяет структуру по тегам validate
// Возвращает сообщение о первом невалидном поле
func Validate(v interface{}) (string, bool) {
	err := validate.Struct(v)
	if err == nil {
		return "", true
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "некорректные данные запроса", false
	}

	return fieldMessage(errs[0]), false
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("поле %s обязательно", field)
	case "max":
		return fmt.Sprintf("поле %s: максимум %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("поле %s: минимум %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("поле %s: допустимые значения %s", field, fe.Param())
	case "date":
		return fmt.Sprintf("поле %s: ожидается дата в формате YYYY-MM-DD", field)
	case "yearmonth":
		return fmt.Sprintf("поле %s: ожидается месяц в формате YYYY-MM", field)
	case "phone":
		return fmt.Sprintf("поле %s: некорректный номер телефона", field)
	default:
		return fmt.Sprintf("поле %s некорректно", field)
	}
}
