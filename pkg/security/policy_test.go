package security_test

import (
	"testing"

	"github.com/xypherlux/storefront-backend/pkg/security"
)

func TestPasswordPolicyViolations(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     int
	}{
		{"acceptable", "Sup3rSecret", 0},
		{"too short", "Ab1", 1},
		{"no uppercase", "lowercase1", 1},
		{"no lowercase", "UPPERCASE1", 1},
		{"no digit", "NoDigitsHere", 1},
		{"empty fails everything", "", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := security.PasswordPolicyViolations(tc.password)
			if len(got) != tc.want {
				t.Fatalf("expected %d violations, got %d: %v", tc.want, len(got), got)
			}
		})
	}
}
