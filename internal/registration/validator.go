package registration

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pot-code/regform/internal/domain"
	"github.com/pot-code/regform/internal/infrastructure/validate"
	"github.com/samber/lo"
)

// Validator registration form validator.
//
// It holds no per-call state, one instance can serve any number of goroutines.
type Validator struct {
	core  *validator.Validate
	trans ut.Translator
	rules map[domain.Field]*fieldRules
}

var _ domain.FormValidator = &Validator{}

// NewValidator builds a Validator with the registration rules and messages
func NewValidator() (*Validator, error) {
	base := validate.NewValidator()
	if err := registerRules(base.Core()); err != nil {
		return nil, err
	}
	if err := registerMessages(base.Translator()); err != nil {
		return nil, err
	}
	return &Validator{
		core:  base.Core(),
		trans: base.Translator(),
		rules: defaultRules(),
	}, nil
}

// MustNewValidator like NewValidator but panics on error
func MustNewValidator() *Validator {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateFullName fullName is required, at least 2 characters, letters and spaces only
func (v *Validator) ValidateFullName(value string) *domain.Result {
	return v.check(domain.FieldFullName, value, "")
}

// ValidateEmail email is required and must look like local@host.tld
func (v *Validator) ValidateEmail(value string) *domain.Result {
	return v.check(domain.FieldEmail, value, "")
}

// ValidatePassword password is required, at least 8 characters, and needs a
// lowercase letter, an uppercase letter, a digit and one of @$!%*?&
func (v *Validator) ValidatePassword(value string) *domain.Result {
	return v.check(domain.FieldPassword, value, "")
}

// ValidateConfirmPassword value must repeat password
func (v *Validator) ValidateConfirmPassword(value, password string) *domain.Result {
	return v.check(domain.FieldConfirmPassword, value, password)
}

// ValidatePhone optional phone number, separators are ignored
func (v *Validator) ValidatePhone(value string) *domain.Result {
	return v.check(domain.FieldPhone, value, "")
}

// ValidateAge optional age between MinAge and MaxAge
func (v *Validator) ValidateAge(value string) *domain.Result {
	return v.check(domain.FieldAge, value, "")
}

// ValidateField validate one field of snapshot, nil if field is not part of the form
func (v *Validator) ValidateField(field domain.Field, snapshot *domain.Snapshot) *domain.Result {
	fr, ok := v.rules[field]
	if !ok {
		return nil
	}
	var sibling string
	if fr.sibling != "" {
		sibling = snapshot.Value(fr.sibling)
	}
	return v.check(field, snapshot.Value(field), sibling)
}

// ValidateForm validate every field, a failing field does not stop the others
func (v *Validator) ValidateForm(snapshot *domain.Snapshot) *domain.FormResult {
	results := make([]*domain.Result, 0, len(domain.Fields))
	for _, field := range domain.Fields {
		results = append(results, v.ValidateField(field, snapshot))
	}
	return &domain.FormResult{
		Valid:  lo.EveryBy(results, func(r *domain.Result) bool { return r.Valid }),
		Fields: results,
	}
}

func (v *Validator) check(field domain.Field, value, sibling string) *domain.Result {
	fr := v.rules[field]
	if fr.normalize != nil {
		value = fr.normalize(value)
	}
	if fr.optional && value == "" {
		return pass(field)
	}
	for _, r := range fr.rules {
		var err error
		if fr.sibling != "" {
			err = v.core.VarWithValue(value, sibling, r.tag)
		} else {
			err = v.core.Var(value, r.tag)
		}
		if err != nil {
			return v.fail(field, r.reason)
		}
	}
	return pass(field)
}

func pass(field domain.Field) *domain.Result {
	return &domain.Result{Field: field, Valid: true}
}

func (v *Validator) fail(field domain.Field, reason domain.Reason) *domain.Result {
	msg, err := v.trans.T(messageKey(field, reason))
	if err != nil || msg == "" {
		msg = string(reason)
	}
	return &domain.Result{
		Field:   field,
		Valid:   false,
		Reason:  reason,
		Message: msg,
	}
}

var std = MustNewValidator()

// ValidateFullName validates with the package level Validator
func ValidateFullName(value string) *domain.Result { return std.ValidateFullName(value) }

// ValidateEmail validates with the package level Validator
func ValidateEmail(value string) *domain.Result { return std.ValidateEmail(value) }

// ValidatePassword validates with the package level Validator
func ValidatePassword(value string) *domain.Result { return std.ValidatePassword(value) }

// ValidateConfirmPassword validates with the package level Validator
func ValidateConfirmPassword(value, password string) *domain.Result {
	return std.ValidateConfirmPassword(value, password)
}

// ValidatePhone validates with the package level Validator
func ValidatePhone(value string) *domain.Result { return std.ValidatePhone(value) }

// ValidateAge validates with the package level Validator
func ValidateAge(value string) *domain.Result { return std.ValidateAge(value) }

// ValidateForm validates with the package level Validator
func ValidateForm(snapshot *domain.Snapshot) *domain.FormResult { return std.ValidateForm(snapshot) }
