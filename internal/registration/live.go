package registration

import (
	"github.com/pot-code/regform/internal/domain"
)

// Triggered returns the fields to re-validate after event fired on field.
//
// Blur always re-checks the field. Input only re-checks fields that already
// hold something, so a user is not told a field is required while typing
// into another one; phone and age wait for blur. Typing a password also
// re-checks a non-empty confirmation. Submit checks everything.
func Triggered(event domain.Event, field domain.Field, snapshot *domain.Snapshot) []domain.Field {
	switch event {
	case domain.EventSubmit:
		return append([]domain.Field(nil), domain.Fields...)
	case domain.EventBlur:
		return []domain.Field{field}
	case domain.EventInput:
		return triggeredByInput(field, snapshot)
	}
	return nil
}

func triggeredByInput(field domain.Field, snapshot *domain.Snapshot) []domain.Field {
	switch field {
	case domain.FieldFullName, domain.FieldEmail:
		if trimSpace(snapshot.Value(field)) != "" {
			return []domain.Field{field}
		}
	case domain.FieldPassword:
		if snapshot.Password == "" {
			return nil
		}
		fields := []domain.Field{domain.FieldPassword}
		if snapshot.ConfirmPassword != "" {
			fields = append(fields, domain.FieldConfirmPassword)
		}
		return fields
	case domain.FieldConfirmPassword:
		if snapshot.ConfirmPassword != "" {
			return []domain.Field{field}
		}
	}
	return nil
}
