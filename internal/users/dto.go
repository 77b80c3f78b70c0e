package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
)

// UserDTO is the API shape for an account.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	CountryCode string     `json:"country_code,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromModel maps the persistence model to its API shape.
func FromModel(m *models.User) UserDTO {
	dto := UserDTO{
		ID:          m.ID,
		Email:       m.Email,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.Profile != nil {
		dto.CountryCode = m.Profile.CountryCode
		dto.PhoneNumber = m.Profile.PhoneNumber
	}
	return dto
}

// CreateUserDTO carries the fields needed to persist a new user with their profile.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CountryCode  string
	PhoneNumber  string
}

// ToModel maps the DTO onto the persistence model.
func (dto CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		IsActive:     true,
		Profile: &models.UserProfile{
			CountryCode: dto.CountryCode,
			PhoneNumber: dto.PhoneNumber,
		},
	}
}
