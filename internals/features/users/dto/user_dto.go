// internals/features/users/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	uModel "perwadag_backend/internals/features/users/model"
)

/* ===================== REQUESTS ===================== */

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	UserNama        string  `json:"user_nama" validate:"required,min=2,max=200"`
	UserUsername    string  `json:"user_username" validate:"required,min=3,max=100"`
	UserEmail       *string `json:"user_email" validate:"omitempty,email"`
	UserPassword    string  `json:"user_password" validate:"required,min=8"`
	UserRole        string  `json:"user_role" validate:"required,oneof=admin inspektorat perwadag"`
	UserInspektorat *string `json:"user_inspektorat" validate:"omitempty,max=100"`
	UserIsActive    *bool   `json:"user_is_active,omitempty" validate:"omitempty"`
}

func (r *CreateUserRequest) ToModel(hashedPassword string) *uModel.UserModel {
	m := &uModel.UserModel{
		UserNama:        r.UserNama,
		UserUsername:    r.UserUsername,
		UserEmail:       r.UserEmail,
		UserPassword:    hashedPassword,
		UserRole:        uModel.UserRole(r.UserRole),
		UserInspektorat: r.UserInspektorat,
		UserIsActive:    true,
	}
	if r.UserIsActive != nil {
		m.UserIsActive = *r.UserIsActive
	}
	return m
}

type UpdateUserRequest struct {
	UserNama        *string `json:"user_nama" validate:"omitempty,min=2,max=200"`
	UserEmail       *string `json:"user_email" validate:"omitempty,email"`
	UserInspektorat *string `json:"user_inspektorat" validate:"omitempty,max=100"`
	UserIsActive    *bool   `json:"user_is_active" validate:"omitempty"`
}

func (r *UpdateUserRequest) ApplyToModel(m *uModel.UserModel) {
	if r.UserNama != nil {
		m.UserNama = *r.UserNama
	}
	if r.UserEmail != nil {
		m.UserEmail = r.UserEmail
	}
	if r.UserInspektorat != nil {
		m.UserInspektorat = r.UserInspektorat
	}
	if r.UserIsActive != nil {
		m.UserIsActive = *r.UserIsActive
	}
	now := time.Now()
	m.UserUpdatedAt = &now
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	UserID          uuid.UUID  `json:"user_id"`
	UserNama        string     `json:"user_nama"`
	UserUsername    string     `json:"user_username"`
	UserEmail       *string    `json:"user_email,omitempty"`
	UserRole        string     `json:"user_role"`
	UserInspektorat *string    `json:"user_inspektorat,omitempty"`
	UserIsActive    bool       `json:"user_is_active"`
	UserCreatedAt   time.Time  `json:"user_created_at"`
	UserUpdatedAt   *time.Time `json:"user_updated_at,omitempty"`
}

func NewUserResponse(m *uModel.UserModel) *UserResponse {
	if m == nil {
		return nil
	}
	return &UserResponse{
		UserID:          m.UserID,
		UserNama:        m.UserNama,
		UserUsername:    m.UserUsername,
		UserEmail:       m.UserEmail,
		UserRole:        string(m.UserRole),
		UserInspektorat: m.UserInspektorat,
		UserIsActive:    m.UserIsActive,
		UserCreatedAt:   m.UserCreatedAt,
		UserUpdatedAt:   m.UserUpdatedAt,
	}
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        *UserResponse `json:"user"`
}
