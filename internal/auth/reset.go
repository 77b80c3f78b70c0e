package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xypherlux/storefront-backend/internal/mailer"
	"github.com/xypherlux/storefront-backend/pkg/auth/session"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
	"github.com/xypherlux/storefront-backend/pkg/security"
	"gorm.io/gorm"
)

// RequestPasswordReset issues a fresh 5-digit code and emails it to the user.
// A second request inside the resend window is rejected.
func (s *service) RequestPasswordReset(ctx context.Context, req ResetRequest) (*ResetRequestResponse, error) {
	user, err := s.findUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	latest, err := s.resetCodes.FindLatestByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reset codes")
	}
	if latest != nil && s.now().Sub(latest.CreatedAt) < s.resetCfg.ResendInterval {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "a reset code was sent recently, please wait before requesting another")
	}

	if err := s.resetCodes.DeleteByUser(ctx, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear old reset codes")
	}

	code, err := security.GenerateResetCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset code")
	}
	if _, err := s.resetCodes.Create(ctx, user.ID, code); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset code")
	}

	if s.mail != nil {
		msg := mailer.Message{
			To:      user.Email,
			Subject: "Your password reset code",
			Body: fmt.Sprintf(
				"Hi %s,\n\nYour verification code is %s. It expires in %d minutes.\n\nIf you did not request this, you can ignore this email.",
				user.FirstName, code, int(s.resetCfg.CodeTTL.Minutes()),
			),
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			s.logg.Error(ctx, "send reset code email", err)
		}
	}

	return &ResetRequestResponse{Message: "a verification code has been sent to your email"}, nil
}

// VerifyResetCode consumes a valid code and opens a short-lived reset session.
// Codes past their TTL are deleted on sight and rejected.
func (s *service) VerifyResetCode(ctx context.Context, req VerifyCodeRequest) (*VerifyCodeResponse, error) {
	user, err := s.findUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	record, err := s.resetCodes.FindByUserAndCode(ctx, user.ID, strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid verification code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reset code")
	}

	if s.now().Sub(record.CreatedAt) > s.resetCfg.CodeTTL {
		if err := s.resetCodes.Delete(ctx, record.ID); err != nil {
			s.logg.Error(ctx, "delete expired reset code", err)
		}
		return nil, pkgerrors.New(pkgerrors.CodeExpired, "verification code has expired, please request a new one")
	}

	if err := s.resetCodes.Delete(ctx, record.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume reset code")
	}

	token, err := s.resetStore.Create(ctx, user.ID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open reset session")
	}

	return &VerifyCodeResponse{ResetToken: token}, nil
}

// SetNewPassword completes the reset: the session token must still be live and
// the new credential must satisfy the account policy.
func (s *service) SetNewPassword(ctx context.Context, req SetPasswordRequest) (*SetPasswordResponse, error) {
	userID, err := s.resetStore.Lookup(ctx, req.ResetToken)
	if err != nil {
		if errors.Is(err, session.ErrResetSessionNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeExpired, "reset session has expired, please start over")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load reset session")
	}

	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	if violations := security.PasswordPolicyViolations(req.Password); len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password does not meet requirements").
			WithDetails(map[string]any{"password": violations})
	}

	user, err := s.findUserByIDString(ctx, userID)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}

	if err := s.resetStore.Consume(ctx, req.ResetToken); err != nil {
		s.logg.Error(ctx, "consume reset session", err)
	}

	return &SetPasswordResponse{Message: "password updated, you can now sign in"}, nil
}

func (s *service) findUserByIDString(ctx context.Context, raw string) (*models.User, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeExpired, "reset session has expired, please start over")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return user, nil
}

func (s *service) findUserByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no account found with this email address")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return user, nil
}
