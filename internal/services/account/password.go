package account

import "unicode"

// PasswordRule is the user-facing description of the password policy
const PasswordRule = "Password must be 6-12 characters, include uppercase, lowercase, a digit, a symbol, and have no spaces."

// ValidatePassword checks a candidate password against the policy:
// 6-12 characters, at least one upper-case letter, one lower-case letter,
// one digit and one non-alphanumeric symbol, and no whitespace anywhere.
func ValidatePassword(password string) bool {
	length := 0
	var hasUpper, hasLower, hasDigit, hasSymbol bool

	for _, r := range password {
		length++
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSymbol = true
		}
	}

	return length >= 6 && length <= 12 && hasUpper && hasLower && hasDigit && hasSymbol
}
