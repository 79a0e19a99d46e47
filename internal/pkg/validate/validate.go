package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// 错误信息以 json 字段名为键
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldErrors 字段级校验错误，一次返回全部失败字段
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// Add 追加一条字段错误
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// AsFieldErrors 判断错误是否为字段级校验错误
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fieldErrors FieldErrors
	if errors.As(err, &fieldErrors) {
		return fieldErrors, true
	}
	return nil, false
}

// Struct 校验 DTO，失败时返回包含所有失败字段的 FieldErrors
func Struct(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	fieldErrors := FieldErrors{}
	for _, fe := range vErrs {
		fieldErrors.Add(fe.Field(), messageFor(fe))
	}
	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if fe.Field() == "password" || fe.Field() == "new_password" {
			return "Password must be at least 6 characters"
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Value must be one of: %s.", fe.Param())
	case "datetime":
		return "Date has wrong format. Use YYYY-MM-DD."
	case "url":
		return "Enter a valid URL."
	default:
		return fmt.Sprintf("Invalid value (rule: %s).", fe.Tag())
	}
}
