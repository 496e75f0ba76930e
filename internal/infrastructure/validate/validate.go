package validate

import "github.com/pot-code/regform/internal/domain"

// NewFieldError create new field error
func NewFieldError(name string, reason string) *domain.FieldError {
	return &domain.FieldError{Domain: name, Reason: reason}
}

// Validator .
type Validator interface {
	Struct(s interface{}) []*domain.FieldError
	Empty(varName string, s interface{}) []*domain.FieldError
}
