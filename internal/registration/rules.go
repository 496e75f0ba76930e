package registration

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/go-playground/validator/v10"
	"github.com/pot-code/regform/internal/domain"
)

// custom validator tags
const (
	tagName    = "reg_name"
	tagEmail   = "reg_email"
	tagLower   = "reg_lower"
	tagUpper   = "reg_upper"
	tagDigit   = "reg_digit"
	tagSpecial = "reg_special"
	tagPhone   = "reg_phone"
	tagInt     = "reg_int"
	tagAge     = "reg_age"
)

// age bounds, inclusive
const (
	MinAge = 1
	MaxAge = 120
)

// whitespace as browsers define it: ASCII space and controls plus the Unicode
// space separators, line/paragraph separators and the byte order mark
const whitespace = `\t\n\v\f\r \x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z` + whitespace + `]+$`)
	emailPattern = regexp.MustCompile(`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)

	// separators users type between phone digits
	phoneSeparators = regexp.MustCompile(`[` + whitespace + `\-()]`)

	// character classes are spelled out, regexp2 \d would accept any Unicode digit
	lowerPattern   = regexp2.MustCompile(`(?=.*[a-z])`, regexp2.Singleline)
	upperPattern   = regexp2.MustCompile(`(?=.*[A-Z])`, regexp2.Singleline)
	digitPattern   = regexp2.MustCompile(`(?=.*[0-9])`, regexp2.Singleline)
	specialPattern = regexp2.MustCompile(`(?=.*[@$!%*?&])`, regexp2.Singleline)
)

func isSpace(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\v', r == '\f', r == '\r', r == ' ':
		return true
	case r == 0xA0, r == 0x1680, r == 0x2028, r == 0x2029, r == 0x202F, r == 0x205F, r == 0x3000, r == 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// trimSpace strips the same whitespace the field patterns treat as blank
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

type rule struct {
	tag    string
	reason domain.Reason
}

// fieldRules ordered rule chain of a field, the first failing rule wins.
//
// When sibling is set every rule is run against the sibling's value as well,
// which is what cross-field tags like eqcsfield compare to.
type fieldRules struct {
	normalize func(string) string
	optional  bool
	sibling   domain.Field
	rules     []rule
}

func defaultRules() map[domain.Field]*fieldRules {
	return map[domain.Field]*fieldRules{
		domain.FieldFullName: {
			normalize: trimSpace,
			rules: []rule{
				{"required", domain.ReasonRequired},
				{"min=2", domain.ReasonTooShort},
				{tagName, domain.ReasonInvalidChars},
			},
		},
		domain.FieldEmail: {
			normalize: trimSpace,
			rules: []rule{
				{"required", domain.ReasonRequired},
				{tagEmail, domain.ReasonInvalidFormat},
			},
		},
		domain.FieldPassword: {
			rules: []rule{
				{"required", domain.ReasonRequired},
				{"min=8", domain.ReasonTooShort},
				{tagLower, domain.ReasonMissingLower},
				{tagUpper, domain.ReasonMissingUpper},
				{tagDigit, domain.ReasonMissingDigit},
				{tagSpecial, domain.ReasonMissingSpecial},
			},
		},
		domain.FieldConfirmPassword: {
			sibling: domain.FieldPassword,
			rules: []rule{
				{"required", domain.ReasonRequired},
				{"eqcsfield", domain.ReasonMismatch},
			},
		},
		domain.FieldPhone: {
			normalize: trimSpace,
			optional:  true,
			rules: []rule{
				{tagPhone, domain.ReasonInvalidFormat},
			},
		},
		domain.FieldAge: {
			normalize: trimSpace,
			optional:  true,
			rules: []rule{
				{tagInt, domain.ReasonNotANumber},
				{tagAge, domain.ReasonOutOfRange},
			},
		},
	}
}

func registerRules(v *validator.Validate) error {
	custom := map[string]validator.Func{
		tagName:    matchRule(namePattern),
		tagEmail:   matchRule(emailPattern),
		tagLower:   lookaheadRule(lowerPattern),
		tagUpper:   lookaheadRule(upperPattern),
		tagDigit:   lookaheadRule(digitPattern),
		tagSpecial: lookaheadRule(specialPattern),
		tagPhone:   isPhone,
		tagInt:     isInt,
		tagAge:     isAge,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func matchRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func lookaheadRule(re *regexp2.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		ok, err := re.MatchString(fl.Field().String())
		return err == nil && ok
	}
}

func isPhone(fl validator.FieldLevel) bool {
	digits := phoneSeparators.ReplaceAllString(fl.Field().String(), "")
	return phonePattern.MatchString(digits)
}

func isInt(fl validator.FieldLevel) bool {
	_, ok := parseLeadingInt(fl.Field().String())
	return ok
}

func isAge(fl validator.FieldLevel) bool {
	n, ok := parseLeadingInt(fl.Field().String())
	return ok && n >= MinAge && n <= MaxAge
}

// parseLeadingInt reads an optional sign followed by an integer from the start
// of s and ignores whatever follows, so "30 years" reads as 30. A 0x prefix
// switches to hexadecimal. ok is false when s does not start with a number.
func parseLeadingInt(s string) (n int, ok bool) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	base := 10
	if i+1 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') {
		base = 16
		i += 2
	}
	start := i
	for ; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= base {
			break
		}
		// saturate, anything this large is out of range anyway
		if n < 1e6 {
			n = n*base + d
		}
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 99
}
