package registration

import (
	"regexp"

	"github.com/pot-code/regform/internal/domain"
)

// NotProvided placeholder for optional fields left empty
const NotProvided = "Not provided"

var phoneGroups = regexp.MustCompile(`(\d{3})(\d{3})(\d{4})`)

// Summarize registration data of a submitted snapshot. Passwords are left out.
func Summarize(snapshot *domain.Snapshot) *domain.Summary {
	return &domain.Summary{
		FullName: trimSpace(snapshot.FullName),
		Email:    trimSpace(snapshot.Email),
		Phone:    orNotProvided(snapshot.Phone),
		Age:      orNotProvided(snapshot.Age),
	}
}

func orNotProvided(value string) string {
	if v := trimSpace(value); v != "" {
		return v
	}
	return NotProvided
}

// FormatPhoneNumber renders the first run of ten digits as (ddd) ddd-dddd,
// anything else is returned unchanged
func FormatPhoneNumber(phone string) string {
	loc := phoneGroups.FindStringSubmatchIndex(phone)
	if loc == nil {
		return phone
	}
	formatted := phoneGroups.ExpandString(nil, "($1) $2-$3", phone, loc)
	return phone[:loc[0]] + string(formatted) + phone[loc[1]:]
}
