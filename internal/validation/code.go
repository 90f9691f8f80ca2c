package validation

import "regexp"

// codePattern matches the accepted short-code format: 6 to 8 characters,
// each drawn from [A-Za-z0-9], case-sensitive.
var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,8}$`)

func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}

func (v *LinkValidator) ValidateCode(code string) error {
	if !IsValidCode(code) {
		return ErrInvalidCodeFormat
	}
	return nil
}
