package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateResetCode returns a random 5-digit verification code in [10000, 99999].
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	return fmt.Sprintf("%05d", n.Int64()+10000), nil
}
