package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=5,numeric"`
	Qty   int    `json:"qty" validate:"omitempty,min=1"`
}

func decodeSample(t *testing.T, body string) (*samplePayload, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	return &dest, err
}

func TestDecodeJSONBodyValid(t *testing.T) {
	dest, err := decodeSample(t, `{"email":"buyer@example.com","code":"12345","qty":2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Email != "buyer@example.com" || dest.Code != "12345" || dest.Qty != 2 {
		t.Fatalf("unexpected payload %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	_, err := decodeSample(t, `{"email":"buyer@example.com","code":"12345","admin":true}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	_, err := decodeSample(t, `{"email":`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyFieldMessages(t *testing.T) {
	_, err := decodeSample(t, `{"email":"not-an-email","code":"12ab","qty":0}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	// Field keys come from the json tag, not the Go name.
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", details["email"])
	}
	if details["code"] != "must be exactly 5 characters" {
		t.Fatalf("unexpected code message %q", details["code"])
	}
}

func TestDecodeJSONBodyMissingRequired(t *testing.T) {
	_, err := decodeSample(t, `{}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["email"] != "is required" || details["code"] != "is required" {
		t.Fatalf("unexpected details %v", details)
	}
}
