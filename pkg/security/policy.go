package security

import "unicode"

// PasswordPolicyViolations returns human-readable reasons a candidate password
// fails the account policy: minimum 8 characters with at least one uppercase
// letter, one lowercase letter and one digit. An empty slice means the
// password is acceptable.
func PasswordPolicyViolations(password string) []string {
	var violations []string

	if len(password) < 8 {
		violations = append(violations, "password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must contain at least one number")
	}

	return violations
}
