package auth

import (
	"context"
	"strings"

	"github.com/xypherlux/storefront-backend/internal/users"
	"github.com/xypherlux/storefront-backend/pkg/db"
	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
	"github.com/xypherlux/storefront-backend/pkg/security"
)

// Register creates the account plus profile and logs the new user straight in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if violations := security.PasswordPolicyViolations(req.Password); len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password does not meet requirements").
			WithDetails(map[string]any{"password": violations})
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		CountryCode:  strings.TrimSpace(req.CountryCode),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, now)
}
