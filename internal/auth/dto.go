package auth

import "github.com/xypherlux/storefront-backend/internal/users"

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the freshly minted token pair and account summary.
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         users.UserDTO `json:"user"`
}

// RegisterRequest is the account creation payload. Email doubles as the login
// identifier.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	CountryCode string `json:"country_code" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// RefreshRequest rotates an access/refresh token pair.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ResetRequest starts the password-reset flow for an email address.
type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetRequestResponse acknowledges that a code was issued.
type ResetRequestResponse struct {
	Message string `json:"message"`
}

// VerifyCodeRequest exchanges a 5-digit code for a reset session token.
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=5,numeric"`
}

// VerifyCodeResponse carries the short-lived reset session token.
type VerifyCodeResponse struct {
	ResetToken string `json:"reset_token"`
}

// SetPasswordRequest completes the reset with a new credential.
type SetPasswordRequest struct {
	ResetToken      string `json:"reset_token" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// SetPasswordResponse acknowledges the credential change.
type SetPasswordResponse struct {
	Message string `json:"message"`
}
