package registration

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/pot-code/regform/internal/domain"
)

var catalogue = map[domain.Field]map[domain.Reason]string{
	domain.FieldFullName: {
		domain.ReasonRequired:     "Full name is required",
		domain.ReasonTooShort:     "Name must be at least 2 characters long",
		domain.ReasonInvalidChars: "Name can only contain letters and spaces",
	},
	domain.FieldEmail: {
		domain.ReasonRequired:      "Email is required",
		domain.ReasonInvalidFormat: "Please enter a valid email address",
	},
	domain.FieldPassword: {
		domain.ReasonRequired:       "Password is required",
		domain.ReasonTooShort:       "Password must be at least 8 characters long",
		domain.ReasonMissingLower:   "Password must contain at least one lowercase letter",
		domain.ReasonMissingUpper:   "Password must contain at least one uppercase letter",
		domain.ReasonMissingDigit:   "Password must contain at least one number",
		domain.ReasonMissingSpecial: "Password must contain at least one special character (@$!%*?&)",
	},
	domain.FieldConfirmPassword: {
		domain.ReasonRequired: "Please confirm your password",
		domain.ReasonMismatch: "Passwords do not match",
	},
	domain.FieldPhone: {
		domain.ReasonInvalidFormat: "Please enter a valid phone number",
	},
	domain.FieldAge: {
		domain.ReasonNotANumber: "Please enter a valid number",
		domain.ReasonOutOfRange: fmt.Sprintf("Please enter a valid age (%d-%d)", MinAge, MaxAge),
	},
}

func messageKey(field domain.Field, reason domain.Reason) string {
	return string(field) + "." + string(reason)
}

func registerMessages(trans ut.Translator) error {
	for field, reasons := range catalogue {
		for reason, text := range reasons {
			if err := trans.Add(messageKey(field, reason), text, false); err != nil {
				return err
			}
		}
	}
	return nil
}
