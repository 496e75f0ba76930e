package domain

import (
	"context"
	"errors"
	"fmt"
)

// Field registration form field name
type Field string

// registration form fields, in display order
const (
	FieldFullName        Field = "fullName"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldPhone           Field = "phone"
	FieldAge             Field = "age"
)

// Fields all registration fields in canonical order
var Fields = []Field{
	FieldFullName,
	FieldEmail,
	FieldPassword,
	FieldConfirmPassword,
	FieldPhone,
	FieldAge,
}

// ErrUnknownField field name is not part of the registration form
var ErrUnknownField = errors.New("Unknown registration field")

// ErrUnknownEvent event is not one of blur, input or submit
var ErrUnknownEvent = errors.New("Unknown form event")

// ParseField map a wire name to Field
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Reason typed failure reason, empty when the field is valid
type Reason string

// failure reasons
const (
	ReasonRequired       Reason = "Required"
	ReasonTooShort       Reason = "TooShort"
	ReasonInvalidChars   Reason = "InvalidChars"
	ReasonInvalidFormat  Reason = "InvalidFormat"
	ReasonMissingLower   Reason = "MissingLower"
	ReasonMissingUpper   Reason = "MissingUpper"
	ReasonMissingDigit   Reason = "MissingDigit"
	ReasonMissingSpecial Reason = "MissingSpecial"
	ReasonMismatch       Reason = "Mismatch"
	ReasonNotANumber     Reason = "NotANumber"
	ReasonOutOfRange     Reason = "OutOfRange"
)

// Snapshot field values captured at one instant
type Snapshot struct {
	FullName        string `json:"fullName" yaml:"fullName" form:"fullName"`
	Email           string `json:"email" yaml:"email" form:"email"`
	Password        string `json:"password" yaml:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" yaml:"confirmPassword" form:"confirmPassword"`
	Phone           string `json:"phone" yaml:"phone" form:"phone"`
	Age             string `json:"age" yaml:"age" form:"age"`
}

// Value returns the captured value of field
func (s *Snapshot) Value(field Field) string {
	switch field {
	case FieldFullName:
		return s.FullName
	case FieldEmail:
		return s.Email
	case FieldPassword:
		return s.Password
	case FieldConfirmPassword:
		return s.ConfirmPassword
	case FieldPhone:
		return s.Phone
	case FieldAge:
		return s.Age
	}
	return ""
}

// Result validation verdict of a single field
type Result struct {
	Field   Field  `json:"field"`
	Valid   bool   `json:"valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`
}

// FieldError failing field as reported to clients
type FieldError struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// FormResult outcome of a whole-form pass
type FormResult struct {
	Valid  bool      `json:"valid"`
	Fields []*Result `json:"fields"`
}

// Get returns the result of field, nil if it was not evaluated
func (fr *FormResult) Get(field Field) *Result {
	for _, r := range fr.Fields {
		if r.Field == field {
			return r
		}
	}
	return nil
}

// FieldErrors failing fields only
func (fr *FormResult) FieldErrors() []*FieldError {
	var errs []*FieldError
	for _, r := range fr.Fields {
		if !r.Valid {
			errs = append(errs, &FieldError{Domain: string(r.Field), Reason: r.Message})
		}
	}
	return errs
}

// Summary registration data echoed back after a successful submit
type Summary struct {
	FullName string `json:"fullName" yaml:"fullName"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Age      string `json:"age" yaml:"age"`
}

// Event form event that triggers validation
type Event string

// form events
const (
	EventBlur   Event = "blur"
	EventInput  Event = "input"
	EventSubmit Event = "submit"
)

// ParseEvent map a wire name to Event
func ParseEvent(name string) (Event, error) {
	switch e := Event(name); e {
	case EventBlur, EventInput, EventSubmit:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// FormValidator pure field validators
type FormValidator interface {
	ValidateFullName(value string) *Result
	ValidateEmail(value string) *Result
	ValidatePassword(value string) *Result
	ValidateConfirmPassword(value, password string) *Result
	ValidatePhone(value string) *Result
	ValidateAge(value string) *Result
	ValidateField(field Field, snapshot *Snapshot) *Result
	ValidateForm(snapshot *Snapshot) *FormResult
}

type RegistrationUseCase interface {
	Submit(ctx context.Context, snapshot *Snapshot) (*FormResult, *Summary)
	CheckField(ctx context.Context, field Field, snapshot *Snapshot) *Result
	Live(ctx context.Context, event Event, field Field, snapshot *Snapshot) []*Result
}
