package user

import (
	"github.com/google/uuid"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler
// Input commands
type RegisterCommand struct {
	Username    string
	DisplayName string
	Password    string
	ProfilePic  string
}

type LoginCommand struct {
	Username string
	Password string
}

// Output DTOs
type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	ProfilePic  string    `json:"profilePic,omitempty"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int      `json:"expires_in"`
	TokenType   string   `json:"token_type"`
	User        *UserDTO `json:"user"`
}
