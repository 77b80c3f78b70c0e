package security_test

import (
	"strconv"
	"testing"

	"github.com/xypherlux/storefront-backend/pkg/security"
)

func TestGenerateResetCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := security.GenerateResetCode()
		if err != nil {
			t.Fatalf("GenerateResetCode returned error: %v", err)
		}
		if len(code) != 5 {
			t.Fatalf("expected 5-digit code, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code is not numeric: %q", code)
		}
		if n < 10000 || n > 99999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}
