package auth

import (
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	"github.com/agriquote/agriquote-backend/pkg/types"
)

// LoginRequest identifies an account by its phone number.
type LoginRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

// RegisterRequest is the self-service signup payload. Admin accounts come from cmd/create-admin.
type RegisterRequest struct {
	Name         string        `json:"name" validate:"required,max=120"`
	Phone        string        `json:"phone" validate:"required,min=7,max=20"`
	Role         enums.Role    `json:"role" validate:"required"`
	Address      types.Address `json:"address"`
	ShowroomName string        `json:"showroom_name,omitempty" validate:"max=120"`
	Brands       []string      `json:"brands,omitempty" validate:"max=20,dive,max=60"`
}

// LoginResponse carries the access token and the signed-in profile.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   int64        `json:"expires_at"`
	User        *models.User `json:"user"`
}
