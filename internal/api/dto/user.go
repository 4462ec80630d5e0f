package dto

import "time"

// RegisterDTO creates an account plus its profile.
type RegisterDTO struct {
	Email       string  `json:"email" binding:"required" validate:"required,email"`
	Password    string  `json:"password" binding:"required" validate:"min=8,max=72"`
	DisplayName string  `json:"display_name" validate:"omitempty,min=1,max=50"`
	Timezone    *string `json:"timezone,omitempty" validate:"omitempty,max=64"`
}

// CredentialDTO is the login body.
type CredentialDTO struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ChangePasswordDTO rotates the account password.
type ChangePasswordDTO struct {
	OldPassword *string `json:"old_password" binding:"required" validate:"min=8,max=72"`
	NewPassword *string `json:"new_password" binding:"required" validate:"min=8,max=72"`
}

// UserDTO is the profile view and the partial-update body.
type UserDTO struct {
	UserID      *uint64    `json:"user_id,omitempty"`
	Email       *string    `json:"email,omitempty"`
	DisplayName *string    `json:"display_name,omitempty" validate:"omitempty,min=1,max=50"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	Bio         *string    `json:"bio,omitempty" validate:"omitempty,max=200"`
	Timezone    *string    `json:"timezone,omitempty" validate:"omitempty,max=64"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// SearchUserDTO is one search-index hit.
type SearchUserDTO struct {
	UserID      uint64  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   string  `json:"avatar_url"`
}

// TokenDTO carries a freshly issued login token.
type TokenDTO struct {
	Token string `json:"token"`
}
