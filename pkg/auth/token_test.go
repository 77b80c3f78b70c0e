package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/xypherlux/storefront-backend/pkg/auth"
	"github.com/xypherlux/storefront-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := auth.MintAccessToken(cfg, time.Now().UTC(), auth.AccessTokenPayload{
		UserID: userID,
		Email:  "shopper@example.com",
		JTI:    "session-1",
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	claims, err := auth.ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Email != "shopper@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.ID != "session-1" {
		t.Fatalf("unexpected jti: %s", claims.ID)
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()

	token, err := auth.MintAccessToken(cfg, time.Now().UTC().Add(-time.Hour), auth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    "stale",
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	if _, err := auth.ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseAccessTokenAllowExpired(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := auth.MintAccessToken(cfg, time.Now().UTC().Add(-time.Hour), auth.AccessTokenPayload{
		UserID: userID,
		JTI:    "stale",
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	claims, err := auth.ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessTokenAllowExpired returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.ID != "stale" {
		t.Fatalf("unexpected jti: %s", claims.ID)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	token, err := auth.MintAccessToken(cfg, time.Now().UTC(), auth.AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := auth.ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestMintAccessTokenRequiresUserID(t *testing.T) {
	if _, err := auth.MintAccessToken(testJWTConfig(), time.Now().UTC(), auth.AccessTokenPayload{}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestMintAccessTokenDefaultsJTI(t *testing.T) {
	cfg := testJWTConfig()
	token, err := auth.MintAccessToken(cfg, time.Now().UTC(), auth.AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}
	claims, err := auth.ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}
