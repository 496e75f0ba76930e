package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pot-code/regform/internal/domain"
)

// PlaygroundV10 Validator implementation using go-playground
type PlaygroundV10 struct {
	core  *validator.Validate
	trans ut.Translator
}

var _ Validator = &PlaygroundV10{}

// NewValidator create a new Validator
//
// custom rules must be registered on Core() before the validator is shared
// between goroutines
func NewValidator() *PlaygroundV10 {
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	en_translations.RegisterDefaultTranslations(validate, trans)
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "-" || name == "" {
			name = fld.Tag.Get("yaml")
			if name == "-" || name == "" {
				return ""
			}
		}
		return name
	})
	return &PlaygroundV10{
		core:  validate,
		trans: trans,
	}
}

// Core underlying go-playground validator
func (v *PlaygroundV10) Core() *validator.Validate {
	return v.core
}

// Translator translator bound to the validator
func (v *PlaygroundV10) Translator() ut.Translator {
	return v.trans
}

// Struct validate struct
//
// nested fields are reported with their namespace minus the top level struct,
// eg. logging.level
func (v *PlaygroundV10) Struct(s interface{}) []*domain.FieldError {
	err := v.core.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*domain.FieldError{NewFieldError("", err.Error())}
	}

	var result []*domain.FieldError
	for _, item := range errs {
		namespace := item.Namespace()
		name := namespace[strings.IndexByte(namespace, '.')+1:]
		result = append(result, NewFieldError(name, item.Translate(v.trans)))
	}
	return result
}

// Empty check if value is empty
func (v *PlaygroundV10) Empty(varName string, s interface{}) []*domain.FieldError {
	if err := v.core.Var(s, "required"); err != nil {
		return []*domain.FieldError{NewFieldError(varName, fmt.Sprintf("%s is required", varName))}
	}
	return nil
}
